package market

import (
	"fmt"
	"strings"
)

// AssetRef ties a display name to the provider's asset identifier.
type AssetRef struct {
	DisplayName string `json:"name" yaml:"name" msgpack:"name"`
	ProviderID  string `json:"id" yaml:"id" msgpack:"id"`
}

// Catalog is the fixed set of assets the panel serves.
type Catalog struct {
	assets []AssetRef
	byName map[string]AssetRef
	byID   map[string]AssetRef
}

var defaultAssets = []AssetRef{
	{DisplayName: "Bitcoin", ProviderID: "bitcoin"},
	{DisplayName: "Ethereum", ProviderID: "ethereum"},
	{DisplayName: "Solana", ProviderID: "solana"},
	{DisplayName: "Toncoin", ProviderID: "the-open-network"},
	{DisplayName: "Aave", ProviderID: "aave"},
	{DisplayName: "PancakeSwap (Cake)", ProviderID: "pancakeswap-token"},
	{DisplayName: "Uniswap", ProviderID: "uniswap"},
}

// DefaultAssets returns the built-in catalog entries.
func DefaultAssets() []AssetRef {
	out := make([]AssetRef, len(defaultAssets))
	copy(out, defaultAssets)
	return out
}

// NewCatalog validates the entries and builds the lookup indexes.
// Names and provider ids must both be unique.
func NewCatalog(assets []AssetRef) (*Catalog, error) {
	if len(assets) == 0 {
		return nil, fmt.Errorf("market catalog: no assets configured")
	}
	c := &Catalog{
		assets: make([]AssetRef, 0, len(assets)),
		byName: make(map[string]AssetRef, len(assets)),
		byID:   make(map[string]AssetRef, len(assets)),
	}
	for i, asset := range assets {
		asset.DisplayName = strings.TrimSpace(asset.DisplayName)
		asset.ProviderID = strings.TrimSpace(asset.ProviderID)
		if asset.DisplayName == "" || asset.ProviderID == "" {
			return nil, fmt.Errorf("market catalog: entry %d must set both name and id", i)
		}
		if _, dup := c.byName[asset.DisplayName]; dup {
			return nil, fmt.Errorf("market catalog: duplicate name %q", asset.DisplayName)
		}
		if _, dup := c.byID[asset.ProviderID]; dup {
			return nil, fmt.Errorf("market catalog: duplicate id %q", asset.ProviderID)
		}
		c.byName[asset.DisplayName] = asset
		c.byID[asset.ProviderID] = asset
		c.assets = append(c.assets, asset)
	}
	return c, nil
}

// MustNewCatalog is NewCatalog that panics on invalid input.
func MustNewCatalog(assets []AssetRef) *Catalog {
	c, err := NewCatalog(assets)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup resolves a display name.
func (c *Catalog) Lookup(displayName string) (AssetRef, error) {
	asset, ok := c.byName[strings.TrimSpace(displayName)]
	if !ok {
		return AssetRef{}, fmt.Errorf("%w: %q", ErrUnknownAsset, displayName)
	}
	return asset, nil
}

// ByProviderID resolves a provider id back to its catalog entry.
func (c *Catalog) ByProviderID(id string) (AssetRef, bool) {
	asset, ok := c.byID[strings.TrimSpace(id)]
	return asset, ok
}

// Assets returns the entries in configured order.
func (c *Catalog) Assets() []AssetRef {
	out := make([]AssetRef, len(c.assets))
	copy(out, c.assets)
	return out
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.assets)
}
