package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/core"
	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/options"
	"github.com/ajitpratap0/nebula-jdbc/pkg/logger"
	"github.com/ajitpratap0/nebula-jdbc/pkg/nebulaerrors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Registry manages table factory registration and lookup by identifier
type Registry struct {
	factories map[string]core.TableFactory
	mu        sync.RWMutex
	logger    *zap.Logger // nil resolves the global logger per call
}

// Global registry instance
var globalRegistry = NewRegistry()

// NewRegistry creates a new table factory registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]core.TableFactory),
	}
}

func (r *Registry) log() *zap.Logger {
	if r.logger != nil {
		return r.logger
	}
	return logger.ForComponent("connector_registry")
}

// RegisterFactory registers a table factory under its FactoryIdentifier
func (r *Registry) RegisterFactory(factory core.TableFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := factory.FactoryIdentifier()
	if _, exists := r.factories[name]; exists {
		return nebulaerrors.New(nebulaerrors.ErrorTypeConflict, fmt.Sprintf("table factory %s already registered", name)).
			WithDetail("connector", name)
	}

	r.factories[name] = factory
	r.log().Debug("table factory registered", zap.String("name", name))
	return nil
}

// Get returns the factory registered under name
func (r *Registry) Get(name string) (core.TableFactory, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, nebulaerrors.New(nebulaerrors.ErrorTypeNotFound, fmt.Sprintf("table factory %s not found", name)).
			WithDetail("connector", name).
			WithDetail("available", r.List())
	}
	return factory, nil
}

// CreateTableSource resolves a source descriptor with the named factory
func (r *Registry) CreateTableSource(name string, ctx *core.FactoryContext) (core.DynamicTableSource, error) {
	factory, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	source, err := factory.CreateTableSource(ctx)
	if err != nil {
		return nil, nebulaerrors.Wrap(err, nebulaerrors.ErrorTypeConfig, fmt.Sprintf("failed to create table source with %s", name)).
			WithDetail("connector", name)
	}
	return source, nil
}

// CreateTableSink resolves a sink descriptor with the named factory
func (r *Registry) CreateTableSink(name string, ctx *core.FactoryContext) (core.DynamicTableSink, error) {
	factory, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	sink, err := factory.CreateTableSink(ctx)
	if err != nil {
		return nil, nebulaerrors.Wrap(err, nebulaerrors.ErrorTypeConfig, fmt.Sprintf("failed to create table sink with %s", name)).
			WithDetail("connector", name)
	}
	return sink, nil
}

// List returns the registered factory identifiers (sorted)
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has checks if a factory is registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.factories[name]
	return exists
}

// Clear removes all registered factories (mainly for testing)
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories = make(map[string]core.TableFactory)
}

// Describe builds the ConnectorInfo of a registered factory. Metadata comes
// from the global catalog when the connector registered any; the option
// schema always comes from the factory itself.
func (r *Registry) Describe(name string) (*ConnectorInfo, error) {
	factory, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	info := &ConnectorInfo{Name: name}
	if meta, err := GetConnectorInfo(name); err == nil {
		copied := *meta
		info = &copied
	}
	info.ConfigSchema = ConfigSchema(factory)
	return info, nil
}

// ConfigSchema describes every option of factory, keyed by option key.
func ConfigSchema(factory core.Factory) map[string]interface{} {
	schema := make(map[string]interface{})
	add := func(keys []options.Key, required bool) {
		for _, k := range keys {
			entry := map[string]interface{}{
				"type":        string(k.Type()),
				"required":    required,
				"description": k.Description(),
			}
			if k.HasDefault() {
				entry["default"] = k.DefaultValue()
			}
			schema[k.Key()] = entry
		}
	}
	add(factory.RequiredOptions(), true)
	add(factory.OptionalOptions(), false)
	return schema
}

// Global registry functions

// RegisterFactory registers a table factory in the global registry
func RegisterFactory(factory core.TableFactory) error {
	return globalRegistry.RegisterFactory(factory)
}

// Get returns a factory from the global registry
func Get(name string) (core.TableFactory, error) {
	return globalRegistry.Get(name)
}

// CreateTableSource resolves a source descriptor from the global registry
func CreateTableSource(name string, ctx *core.FactoryContext) (core.DynamicTableSource, error) {
	return globalRegistry.CreateTableSource(name, ctx)
}

// CreateTableSink resolves a sink descriptor from the global registry
func CreateTableSink(name string, ctx *core.FactoryContext) (core.DynamicTableSink, error) {
	return globalRegistry.CreateTableSink(name, ctx)
}

// List returns registered factory identifiers from the global registry
func List() []string {
	return globalRegistry.List()
}

// Has checks if a factory is registered in the global registry
func Has(name string) bool {
	return globalRegistry.Has(name)
}

// Describe describes a factory from the global registry
func Describe(name string) (*ConnectorInfo, error) {
	return globalRegistry.Describe(name)
}

// GetRegistry returns the global registry instance.
// This is the primary way to access the table factory registry.
func GetRegistry() *Registry {
	return globalRegistry
}

// ConnectorInfo provides information about a connector
type ConnectorInfo struct {
	Name         string                 `json:"name"`
	Type         string                 `json:"type"`
	Description  string                 `json:"description"`
	Version      string                 `json:"version"`
	Author       string                 `json:"author"`
	Dialect      string                 `json:"dialect"`
	Capabilities []string               `json:"capabilities"`
	ConfigSchema map[string]interface{} `json:"config_schema"`
}

// ConnectorCatalog manages connector metadata
type ConnectorCatalog struct {
	connectors map[string]*ConnectorInfo
	mu         sync.RWMutex
}

// NewConnectorCatalog creates a new connector catalog
func NewConnectorCatalog() *ConnectorCatalog {
	return &ConnectorCatalog{
		connectors: make(map[string]*ConnectorInfo),
	}
}

// Register adds a connector to the catalog
func (c *ConnectorCatalog) Register(info *ConnectorInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.connectors[info.Name]; exists {
		return nebulaerrors.New(nebulaerrors.ErrorTypeConflict, fmt.Sprintf("connector %s already in catalog", info.Name))
	}

	c.connectors[info.Name] = info
	return nil
}

// Get retrieves connector information
func (c *ConnectorCatalog) Get(name string) (*ConnectorInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info, exists := c.connectors[name]
	if !exists {
		return nil, nebulaerrors.New(nebulaerrors.ErrorTypeNotFound, fmt.Sprintf("connector %s not found in catalog", name))
	}

	return info, nil
}

// List returns all connectors in the catalog, sorted by name
func (c *ConnectorCatalog) List() []*ConnectorInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	infos := make([]*ConnectorInfo, 0, len(c.connectors))
	for _, info := range c.connectors {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Global catalog instance
var globalCatalog = NewConnectorCatalog()

// RegisterConnectorInfo registers connector information in the global catalog
func RegisterConnectorInfo(info *ConnectorInfo) error {
	return globalCatalog.Register(info)
}

// Install registers factory in the global registry and info in the global
// catalog. Dialect packages call it from init, where nothing can handle the
// error, so conflicts are also logged at error level.
func Install(factory core.TableFactory, info *ConnectorInfo) error {
	return install(globalRegistry, globalCatalog, factory, info)
}

func install(r *Registry, c *ConnectorCatalog, factory core.TableFactory, info *ConnectorInfo) error {
	err := multierr.Append(r.RegisterFactory(factory), c.Register(info))
	if err != nil {
		r.log().Error("connector registration failed",
			zap.String("connector", factory.FactoryIdentifier()),
			zap.Error(err))
	}
	return err
}

// GetConnectorInfo retrieves connector information from the global catalog
func GetConnectorInfo(name string) (*ConnectorInfo, error) {
	return globalCatalog.Get(name)
}

// ListConnectorInfo lists all connectors in the global catalog
func ListConnectorInfo() []*ConnectorInfo {
	return globalCatalog.List()
}
