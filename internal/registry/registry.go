// Package registry is the runtime's handler dispatch table: a stand-in for
// the out-of-scope schema/config builder contract, giving the indexing
// runtime and event pipeline a concrete set of callbacks to dispatch to
// both in production wiring and in tests.
package registry

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/0xkanth/evmindexer/internal/chainmodel"
	"github.com/0xkanth/evmindexer/internal/checkpoint"
	"github.com/0xkanth/evmindexer/internal/evmclient"
	"github.com/0xkanth/evmindexer/internal/store"
)

// Context is what a handler receives alongside the event: the pinned chain
// position, the contract address book, a read-only EVM client, and the
// current indexing transaction's store handle.
type Context struct {
	ChainID     uint64
	Contracts   map[string]common.Address
	Client      *evmclient.Client
	DB          *store.Tx
	BlockNumber uint64
	Checkpoint  checkpoint.Checkpoint
}

// HandlerFunc is a registered event callback.
type HandlerFunc func(ctx context.Context, event chainmodel.Event, rc *Context) error

// SetupFunc is a registered `<Contract>:setup` callback, run once per chain
// the contract is defined on before any event processing begins.
type SetupFunc func(ctx context.Context, rc *Context) error

// Registry holds every registered handler, keyed by "<Contract>:<Event>"
// (e.g. "Pool:Swap") to match Filter.Handler / RawEvent.HandlerName.
type Registry struct {
	handlers map[string]HandlerFunc
	setups   map[string]SetupFunc
	// chainsByContract records which chains each contract is configured on,
	// so ProcessSetupEvents knows how many times to invoke each setup
	// handler (once per chain).
	chainsByContract map[string][]uint64
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		handlers:         map[string]HandlerFunc{},
		setups:           map[string]SetupFunc{},
		chainsByContract: map[string][]uint64{},
	}
}

// On registers fn for handlerName (e.g. "Pool:Swap").
func (r *Registry) On(handlerName string, fn HandlerFunc) {
	r.handlers[handlerName] = fn
}

// Handler looks up the callback for handlerName.
func (r *Registry) Handler(handlerName string) (HandlerFunc, bool) {
	fn, ok := r.handlers[handlerName]
	return fn, ok
}

// OnSetup registers fn as contract's setup handler, and records that
// contract is defined on chains.
func (r *Registry) OnSetup(contract string, chains []uint64, fn SetupFunc) {
	r.setups[contract] = fn
	r.chainsByContract[contract] = chains
}

// SetupHandlers returns every registered setup handler paired with the
// chains it must run on, for ProcessSetupEvents to iterate.
func (r *Registry) SetupHandlers() map[string]SetupEntry {
	out := make(map[string]SetupEntry, len(r.setups))
	for contract, fn := range r.setups {
		out[contract] = SetupEntry{Fn: fn, Chains: r.chainsByContract[contract]}
	}
	return out
}

// SetupEntry pairs a setup handler with the chains it runs on.
type SetupEntry struct {
	Fn     SetupFunc
	Chains []uint64
}
