// Package filter implements the declarative predicates that select which
// blocks, transactions, logs, traces, and native transfers an indexer cares
// about, plus the factory child-address resolution that lets a filter's
// address set grow as earlier events are matched.
package filter

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Kind identifies which shape of chain data a Filter matches against.
type Kind string

const (
	KindBlock       Kind = "block"
	KindTransaction Kind = "transaction"
	KindLog         Kind = "log"
	KindTrace       Kind = "trace"
	KindTransfer    Kind = "transfer"
)

// CallType restricts a trace filter to a specific EVM call type.
type CallType string

const (
	CallTypeAny              CallType = ""
	CallTypeCall             CallType = "call"
	CallTypeDelegateCall     CallType = "delegatecall"
	CallTypeStaticCall       CallType = "staticcall"
	CallTypeCreate           CallType = "create"
	CallTypeCreate2          CallType = "create2"
	CallTypeSelfDestruct     CallType = "selfdestruct"
)

// FactoryRef points a filter's address set at the child addresses discovered
// by a prior factory log match, instead of (or in addition to) a static
// address list.
type FactoryRef struct {
	FactoryID     string
	EventSelector common.Hash
}

// Filter is a single declarative predicate. Not every field applies to every
// Kind; see the Is*Matched functions for which fields a given kind reads.
type Filter struct {
	Name     string
	Kind     Kind
	ChainID  uint64
	Handler  string // callback name, used for EventCount bookkeeping

	// Block filters.
	Offset   uint64
	Interval uint64

	// Log / transaction / trace address matching.
	Addresses []common.Address
	Factory   *FactoryRef

	// FactorySource, set on a log filter, marks it as a factory's child
	// creation event: every match seeds a new child address under this
	// factory ID, for other filters' FactoryRef to resolve. Empty for an
	// ordinary (non-producing) filter.
	FactorySource string
	// ChildAddressTopic names the topic slot (1-3) holding the newly
	// created child's address on a FactorySource match; 0 means read it
	// from the last word of Data instead (events that leave it unindexed).
	ChildAddressTopic int

	// Log topic matching: Topics[0] is the event signature (selector);
	// Topics[1..3] are indexed argument filters. A nil/empty slot means
	// "any value"; a non-empty slot is a set of allowed values at that
	// position.
	Topics [4][]common.Hash

	// Trace / transaction matching.
	FromAddresses []common.Address
	ToAddresses   []common.Address
	CallTypes     []CallType
	Selector      []byte // 4-byte function selector prefix match against trace.Input

	FromBlock uint64
	ToBlock   *uint64 // nil means unbounded

	IncludeReverted  bool
	ReceiptRequired  bool
}

// InWindow reports whether blockNumber falls within [FromBlock, ToBlock].
func (f Filter) InWindow(blockNumber uint64) bool {
	if blockNumber < f.FromBlock {
		return false
	}
	if f.ToBlock != nil && blockNumber > *f.ToBlock {
		return false
	}
	return true
}

// Block is the minimal view of a block needed for matching.
type Block struct {
	Hash       common.Hash
	ParentHash common.Hash
	Number     uint64
	Timestamp  uint64
	LogsBloom  []byte
}

// Log is the minimal view of a log needed for matching.
type Log struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
	TxHash  common.Hash
	TxIndex uint
	Index   uint
	Removed bool
}

// Trace is the minimal view of a call-frame trace needed for matching.
type Trace struct {
	From     common.Address
	To       *common.Address
	CallType CallType
	Input    []byte
	Value    *big.Int // wei; nil treated as zero
	Error    string
	TxHash   common.Hash
	TxIndex  uint
	Index    uint
}

// Transaction is the minimal view of a transaction needed for matching.
type Transaction struct {
	Hash    common.Hash
	From    common.Address
	To      *common.Address
	Index   uint
}

// Receipt carries the subset of a transaction receipt matching cares about.
type Receipt struct {
	Status uint64 // 1 = success
}

// ChildAddressIndex resolves factory-discovered child addresses. Membership
// requires that the address was discovered at or before currentBlockNumber.
type ChildAddressIndex interface {
	// DiscoveredAt returns the block number the address was first matched at
	// for the given factory, and whether it has been discovered at all.
	DiscoveredAt(factoryID string, address common.Address) (blockNumber uint64, ok bool)
}

func addressMatches(f Filter, idx ChildAddressIndex, addr common.Address, currentBlockNumber uint64) bool {
	for _, a := range f.Addresses {
		if a == addr {
			return true
		}
	}
	if f.Factory != nil && idx != nil {
		if discovered, ok := idx.DiscoveredAt(f.Factory.FactoryID, addr); ok {
			return discovered <= currentBlockNumber
		}
	}
	return false
}

func addressSetMatches(f Filter, idx ChildAddressIndex, addrs []common.Address, currentBlockNumber uint64) bool {
	if len(addrs) == 0 {
		// "no constraint configured" only when the filter also specifies no
		// addresses/factory at all.
		return len(f.Addresses) == 0 && f.Factory == nil
	}
	for _, a := range addrs {
		if addressMatches(f, idx, a, currentBlockNumber) {
			return true
		}
	}
	return false
}

// IsBlockFilterMatched implements spec §4.2: (number - offset) % interval == 0,
// subject to the from/to block window. Interval of 0 is treated as "every
// block" (never dividing by zero).
func IsBlockFilterMatched(f Filter, b Block) bool {
	if f.Kind != KindBlock {
		return false
	}
	if !f.InWindow(b.Number) {
		return false
	}
	if f.Interval == 0 {
		return true
	}
	if b.Number < f.Offset {
		return false
	}
	return (b.Number-f.Offset)%f.Interval == 0
}

func topicsMatch(f Filter, topics []common.Hash) bool {
	for slot, allowed := range f.Topics {
		if len(allowed) == 0 {
			continue
		}
		if slot >= len(topics) {
			return false
		}
		found := false
		for _, want := range allowed {
			if topics[slot] == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// IsLogFilterMatched implements spec §4.2 log matching: address (direct or
// factory child) plus per-slot topic matching, within the block window.
func IsLogFilterMatched(f Filter, idx ChildAddressIndex, l Log, blockNumber uint64) bool {
	if f.Kind != KindLog {
		return false
	}
	if !f.InWindow(blockNumber) {
		return false
	}
	if !addressMatches(f, idx, l.Address, blockNumber) {
		return false
	}
	return topicsMatch(f, l.Topics)
}

// IsTraceFilterMatched implements spec §4.2 trace matching: from/to address
// (with factory resolution), optional call type, selector prefix, and the
// includeReverted gate. A trace with no `to` (a contract-creation trace)
// never matches a filter that requires a to-address set.
func IsTraceFilterMatched(f Filter, idx ChildAddressIndex, t Trace, blockNumber uint64) bool {
	if f.Kind != KindTrace {
		return false
	}
	if !f.InWindow(blockNumber) {
		return false
	}
	if !f.IncludeReverted && t.Error != "" {
		return false
	}
	if len(f.FromAddresses) > 0 && !addressSetMatchesOne(f.FromAddresses, t.From) {
		return false
	}
	if len(f.ToAddresses) > 0 || f.Factory != nil {
		if t.To == nil {
			return false
		}
		if !addressSetMatchesOne(f.ToAddresses, *t.To) && !addressMatches(f, idx, *t.To, blockNumber) {
			return false
		}
	}
	if len(f.CallTypes) > 0 && !callTypeMatches(f.CallTypes, t.CallType) {
		return false
	}
	if len(f.Selector) > 0 {
		if len(t.Input) < len(f.Selector) {
			return false
		}
		if !hasPrefix(t.Input, f.Selector) {
			return false
		}
	}
	return true
}

// IsTransferFilterMatched implements spec §4.2 native-transfer matching:
// identical to trace matching but additionally requires trace.Value > 0.
func IsTransferFilterMatched(f Filter, idx ChildAddressIndex, t Trace, blockNumber uint64) bool {
	if f.Kind != KindTransfer {
		return false
	}
	if t.Value == nil || t.Value.Sign() <= 0 {
		return false
	}
	probe := f
	probe.Kind = KindTrace
	return IsTraceFilterMatched(probe, idx, t, blockNumber)
}

// IsTransactionFilterMatched implements spec §4.2 transaction matching: from/to
// address (with factory resolution) and the includeReverted/receipt-status gate.
func IsTransactionFilterMatched(f Filter, idx ChildAddressIndex, tx Transaction, receipt *Receipt, blockNumber uint64) bool {
	if f.Kind != KindTransaction {
		return false
	}
	if !f.InWindow(blockNumber) {
		return false
	}
	if !f.IncludeReverted {
		if receipt == nil || receipt.Status != 1 {
			return false
		}
	}
	if len(f.FromAddresses) > 0 && !addressSetMatchesOne(f.FromAddresses, tx.From) {
		return false
	}
	if len(f.ToAddresses) > 0 || f.Factory != nil {
		if tx.To == nil {
			return false
		}
		if !addressSetMatchesOne(f.ToAddresses, *tx.To) && !addressMatches(f, idx, *tx.To, blockNumber) {
			return false
		}
	}
	return true
}

func addressSetMatchesOne(set []common.Address, addr common.Address) bool {
	for _, a := range set {
		if a == addr {
			return true
		}
	}
	return false
}

func callTypeMatches(allowed []CallType, ct CallType) bool {
	for _, c := range allowed {
		if c == ct {
			return true
		}
	}
	return false
}

func hasPrefix(data, prefix []byte) bool {
	if len(data) < len(prefix) {
		return false
	}
	for i := range prefix {
		if data[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Set partitions a chain's filters by kind, computed once when the filter
// configuration is built (spec §4.3 step 1).
type Set struct {
	Blocks       []Filter
	Transactions []Filter
	Logs         []Filter
	Traces       []Filter
	Transfers    []Filter
}

// NewSet partitions filters into a Set, keeping only those for chainID.
func NewSet(chainID uint64, filters []Filter) Set {
	var s Set
	for _, f := range filters {
		if f.ChainID != chainID {
			continue
		}
		switch f.Kind {
		case KindBlock:
			s.Blocks = append(s.Blocks, f)
		case KindTransaction:
			s.Transactions = append(s.Transactions, f)
		case KindLog:
			s.Logs = append(s.Logs, f)
		case KindTrace:
			s.Traces = append(s.Traces, f)
		case KindTransfer:
			s.Transfers = append(s.Transfers, f)
		}
	}
	return s
}

// AnyRequiresReceipt reports whether any transaction/log/trace filter in the
// set demands a receipt (used to decide whether to fetch receipts at all).
func (s Set) AnyRequiresReceipt() bool {
	for _, f := range s.Transactions {
		if f.ReceiptRequired || !f.IncludeReverted {
			return true
		}
	}
	for _, f := range s.Logs {
		if f.ReceiptRequired {
			return true
		}
	}
	for _, f := range s.Traces {
		if f.ReceiptRequired {
			return true
		}
	}
	return false
}

// LogTopicSelectors returns the set of topic0 selectors configured across all
// log filters, used to probe a block's bloom filter cheaply before calling
// eth_getLogs.
func (s Set) LogTopicSelectors() []common.Hash {
	var out []common.Hash
	for _, f := range s.Logs {
		out = append(out, f.Topics[0]...)
	}
	return out
}

// LogAddresses returns the static (non-factory) addresses configured across
// all log filters, used alongside LogTopicSelectors to probe a block's
// bloom filter before calling eth_getLogs.
func (s Set) LogAddresses() []common.Address {
	var out []common.Address
	for _, f := range s.Logs {
		out = append(out, f.Addresses...)
	}
	return out
}

// FactoryLogFilters returns the subset of log filters configured as factory
// sources (FactorySource != ""), whose matches seed new child addresses
// rather than (or in addition to) dispatching directly to a handler.
func (s Set) FactoryLogFilters() []Filter {
	var out []Filter
	for _, f := range s.Logs {
		if f.FactorySource != "" {
			out = append(out, f)
		}
	}
	return out
}

// ExtractChildAddress pulls the newly discovered child address out of a log
// that matched a FactorySource filter, per f.ChildAddressTopic.
func ExtractChildAddress(f Filter, l Log) (common.Address, bool) {
	if f.ChildAddressTopic > 0 {
		if f.ChildAddressTopic >= len(l.Topics) {
			return common.Address{}, false
		}
		return common.BytesToAddress(l.Topics[f.ChildAddressTopic].Bytes()), true
	}
	if len(l.Data) < 32 {
		return common.Address{}, false
	}
	return common.BytesToAddress(l.Data[len(l.Data)-32:]), true
}

// HasFactory reports whether any log/trace/transfer filter in the set
// resolves its addresses through a factory (Factory set) — used by
// cmd/indexer's fetchLogs to decide whether it may ever skip eth_getLogs
// based on bloom alone (spec §4.5 step 1).
func (s Set) HasFactory() bool {
	for _, f := range s.Logs {
		if f.Factory != nil {
			return true
		}
	}
	for _, f := range s.Traces {
		if f.Factory != nil {
			return true
		}
	}
	for _, f := range s.Transfers {
		if f.Factory != nil {
			return true
		}
	}
	return false
}

// BloomMightContain is a conservative (false-positive-prone, never
// false-negative) probe of whether a block's logs bloom could contain any of
// the set's log-filter addresses or topic0 selectors. A zero bloom never
// matches anything.
func BloomMightContain(bloom []byte, addresses []common.Address, topics []common.Hash) bool {
	if allZero(bloom) {
		return false
	}
	for _, a := range addresses {
		if bloomTest(bloom, a.Bytes()) {
			return true
		}
	}
	for _, t := range topics {
		if bloomTest(bloom, t.Bytes()) {
			return true
		}
	}
	return len(addresses) == 0 && len(topics) == 0
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// bloomTest implements the standard Ethereum 2048-bit / 3-hash bloom test
// using keccak256(data), matching go-ethereum's core/types.Bloom.Test
// semantics without importing the concrete Bloom type (the sync layer deals
// in raw bloom bytes fetched over RPC).
func bloomTest(bloom []byte, data []byte) bool {
	if len(bloom) != 256 {
		return true // unknown shape: don't claim certainty, fall back to "might match"
	}
	h := keccak256(data)
	for i := 0; i < 3; i++ {
		bitIdx := (uint(h[2*i])<<8 | uint(h[2*i+1])) & 2047
		byteIdx := 256 - 1 - bitIdx/8
		bit := byte(1) << (bitIdx % 8)
		if bloom[byteIdx]&bit == 0 {
			return false
		}
	}
	return true
}

// keccak256 is provided via a small indirection so this package does not need
// to import golang.org/x/crypto/sha3 directly when the caller (realtime sync)
// already links go-ethereum's crypto package; see filter_hash.go.
var keccak256 = defaultKeccak256
