// Package realtime implements the per-chain realtime sync service: polling
// for new block headers, detecting the four transitions a poll can surface
// (identity, linked, gap, reorg), and maintaining the in-memory
// chainmodel.LocalChain those transitions are checked against. It hands
// appended blocks to the caller (the indexing runtime) and prunes blocks
// once they pass the chain's finality depth.
package realtime

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/0xkanth/evmindexer/internal/chainmodel"
)

// BlockSource is the minimal chain-read surface realtime sync needs,
// satisfied by internal/rpc.Queue through a thin adapter so this package's
// tests can use an in-memory fake instead of a live RPC connection.
type BlockSource interface {
	LatestHeader(ctx context.Context) (chainmodel.LightBlock, error)
	HeaderByNumber(ctx context.Context, number uint64) (chainmodel.LightBlock, error)
}

// TransitionKind classifies what a single poll observed relative to the
// tracked local chain (spec §3: identity/backward/gap/linked).
type TransitionKind int

const (
	// Identity: the remote head is unchanged since the last poll.
	Identity TransitionKind = iota
	// Linked: the remote head is exactly one block ahead and its parent
	// hash matches the local tip — the common case.
	Linked
	// Gap: the remote head is more than one block ahead of the local tip,
	// with no break in parent-hash linkage once the gap is filled.
	Gap
	// Reorg: the remote chain diverged from the local tip; some local
	// blocks were invalidated and had to be discarded.
	Reorg
)

// Result reports what a Poll call observed and did.
type Result struct {
	Kind      TransitionKind
	Appended  []chainmodel.LightBlock // oldest first; the caller should run these through the pipeline
	ReorgFrom uint64                  // only set when Kind == Reorg: the highest invalidated local block number

	// Finalized reports whether this poll advanced the finalized pointer
	// (spec §4.5 step 9). FinalizedFrom/FinalizedBlock describe the newly
	// finalized range (FinalizedFrom, FinalizedBlock.Number], inclusive of
	// the latter: the caller must durably record a cache interval covering
	// it before treating the finalize transition as complete.
	Finalized      bool
	FinalizedFrom  uint64
	FinalizedBlock chainmodel.LightBlock
}

// Service tracks one chain's sync state: its local chain tail and the
// source it polls against.
type Service struct {
	chainID            uint64
	finalityBlockCount uint64
	src                BlockSource
	local              *chainmodel.LocalChain
	logger             zerolog.Logger

	hasFinalized bool
	finalized    uint64
}

// New builds a Service with an empty local chain; the first Poll call seeds
// it with the current remote head.
func New(chainID, finalityBlockCount uint64, src BlockSource, logger zerolog.Logger) *Service {
	return &Service{
		chainID:            chainID,
		finalityBlockCount: finalityBlockCount,
		src:                src,
		local:              chainmodel.NewLocalChain(),
		logger:             logger.With().Str("component", "realtime").Uint64("chain_id", chainID).Logger(),
	}
}

// Seed pre-populates the local chain tip without treating it as an appended
// block (used on startup to resume from a persisted syncstore.Cursor
// instead of replaying from genesis).
func (s *Service) Seed(b chainmodel.LightBlock) error {
	return s.local.Append(b)
}

// SeedFinalized sets the finalized block pointer a fresh Service starts
// from (the backfill boundary on a cold start, or the persisted finalized
// pointer on resume). Until this is called the service only prunes the
// local chain to bound its size and never emits a finalize transition.
func (s *Service) SeedFinalized(number uint64) {
	s.finalized = number
	s.hasFinalized = true
}

// FinalizedBlockNumber returns the most recently finalized block number and
// whether one has been established yet.
func (s *Service) FinalizedBlockNumber() (uint64, bool) {
	return s.finalized, s.hasFinalized
}

// LocalChain exposes the tracked tail for inspection/telemetry.
func (s *Service) LocalChain() *chainmodel.LocalChain {
	return s.local
}

// Poll performs one sync step: fetch the remote head and reconcile it
// against the local chain, returning which of the four transitions
// occurred and the blocks (if any) the caller should run through the event
// pipeline.
func (s *Service) Poll(ctx context.Context) (*Result, error) {
	head, err := s.src.LatestHeader(ctx)
	if err != nil {
		return nil, fmt.Errorf("realtime: fetch latest header: %w", err)
	}

	tip, ok := s.local.Tip()
	if !ok {
		if err := s.local.Append(head); err != nil {
			return nil, err
		}
		return &Result{Kind: Linked, Appended: []chainmodel.LightBlock{head}}, nil
	}

	switch {
	case head.Hash == tip.Hash:
		return &Result{Kind: Identity}, nil

	case head.Number == tip.Number+1 && head.ParentHash == tip.Hash:
		if err := s.local.Append(head); err != nil {
			return nil, err
		}
		res := &Result{Kind: Linked, Appended: []chainmodel.LightBlock{head}}
		s.pruneAndFinalize(res)
		return res, nil

	case head.Number > tip.Number+1:
		return s.fillGap(ctx, tip, head)

	default:
		return s.handleReorg(ctx, head)
	}
}

// fillGap fetches every block between the local tip and head, appending
// them one at a time. If linkage breaks partway through (the chain
// reorganized again while we were catching up), it falls back to
// handleReorg from the point of failure.
func (s *Service) fillGap(ctx context.Context, tip, head chainmodel.LightBlock) (*Result, error) {
	var appended []chainmodel.LightBlock
	prev := tip
	for n := tip.Number + 1; n < head.Number; n++ {
		b, err := s.src.HeaderByNumber(ctx, n)
		if err != nil {
			return nil, fmt.Errorf("realtime: fetch header %d while filling gap: %w", n, err)
		}
		if b.ParentHash != prev.Hash {
			return s.handleReorg(ctx, b)
		}
		if err := s.local.Append(b); err != nil {
			return nil, err
		}
		appended = append(appended, b)
		prev = b
	}

	if head.ParentHash != prev.Hash {
		return s.handleReorg(ctx, head)
	}
	if err := s.local.Append(head); err != nil {
		return nil, err
	}
	appended = append(appended, head)
	res := &Result{Kind: Gap, Appended: appended}
	s.pruneAndFinalize(res)

	return res, nil
}

// handleReorg walks the local chain backward, comparing each locally held
// block's hash against what the remote chain now reports at that number,
// until it finds a common ancestor (or exhausts the local chain). It then
// truncates the local chain at that point and replays forward to newHead.
func (s *Service) handleReorg(ctx context.Context, newHead chainmodel.LightBlock) (*Result, error) {
	// Poll only reaches handleReorg (directly or via fillGap) after already
	// confirming a non-empty local tip, so this always succeeds.
	invalidatedFrom, _ := s.local.Tip()

	blocks := s.local.Blocks()
	ancestorNumber := uint64(0)
	found := false
	for i := len(blocks) - 1; i >= 0; i-- {
		candidate := blocks[i]
		remote, err := s.src.HeaderByNumber(ctx, candidate.Number)
		if err != nil {
			return nil, fmt.Errorf("realtime: fetch header %d while resolving reorg: %w", candidate.Number, err)
		}
		if remote.Hash == candidate.Hash {
			ancestorNumber = candidate.Number
			found = true
			break
		}
	}

	if !found {
		s.local.TruncateFrom(0)
	} else {
		s.local.TruncateFrom(ancestorNumber + 1)
	}

	s.logger.Warn().
		Uint64("invalidated_from", invalidatedFrom.Number).
		Bool("found_ancestor", found).
		Msg("reorg detected, replaying from common ancestor")

	var appended []chainmodel.LightBlock
	start := ancestorNumber + 1
	if !found {
		start = newHead.Number
	}
	for n := start; n < newHead.Number; n++ {
		b, err := s.src.HeaderByNumber(ctx, n)
		if err != nil {
			return nil, fmt.Errorf("realtime: fetch header %d while replaying after reorg: %w", n, err)
		}
		if err := s.local.Append(b); err != nil {
			return nil, err
		}
		appended = append(appended, b)
	}
	if err := s.local.Append(newHead); err != nil {
		return nil, err
	}
	appended = append(appended, newHead)
	res := &Result{Kind: Reorg, Appended: appended, ReorgFrom: invalidatedFrom.Number}
	s.pruneAndFinalize(res)

	return res, nil
}

// pruneAndFinalize implements spec §4.5 step 9. Once a finalized baseline is
// established (SeedFinalized), it checks whether the tip has advanced
// 2*finalityBlockCount past the last finalized block; if so, the block
// finalityBlockCount behind the tip becomes the newly finalized block, the
// local chain is pruned up to it, and the transition is reported on res so
// the caller can record the cache interval and emit the finalize event.
// Before a baseline exists, it falls back to trimming the local chain to
// finalityBlockCount behind the tip purely to bound memory, with no
// finalize transition reported.
func (s *Service) pruneAndFinalize(res *Result) {
	tip, ok := s.local.Tip()
	if !ok || tip.Number < s.finalityBlockCount {
		return
	}

	if !s.hasFinalized {
		s.local.PruneUpTo(tip.Number - s.finalityBlockCount)
		return
	}

	threshold := s.finalized + 2*s.finalityBlockCount
	if tip.Number < threshold {
		return
	}

	pendingFinalized, found := s.local.FindByNumber(tip.Number - s.finalityBlockCount)
	if !found {
		return
	}

	res.Finalized = true
	res.FinalizedFrom = s.finalized + 1
	res.FinalizedBlock = pendingFinalized

	s.local.PruneUpTo(pendingFinalized.Number)
	s.finalized = pendingFinalized.Number
}
