package pipeline

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/0xkanth/evmindexer/internal/chainmodel"
)

// ErrNoABIMatch is what the decode helpers report when a matched event's
// source (log topic0 or trace selector) has no registered ABI entry. It is
// non-fatal: DecodeEvents drops such an event from the decoded batch and
// neither returns nor logs the error.
type ErrNoABIMatch struct {
	Selector string
}

func (e *ErrNoABIMatch) Error() string {
	return fmt.Sprintf("pipeline: no ABI entry registered for selector %q", e.Selector)
}

// ABIRegistry resolves the go-ethereum ABI definitions needed to decode a raw
// event's log or trace payload into typed arguments. Indexing apps build one
// of these once at startup from their contract ABI JSON files; it replaces
// the teacher's per-event hardcoded struct unpacking with a single generic
// decode path driven by registration.
type ABIRegistry struct {
	events  map[common.Hash]abi.Event
	methods map[[4]byte]abi.Method
}

// NewABIRegistry returns an empty registry ready for RegisterEvent/RegisterMethod calls.
func NewABIRegistry() *ABIRegistry {
	return &ABIRegistry{
		events:  make(map[common.Hash]abi.Event),
		methods: make(map[[4]byte]abi.Method),
	}
}

// RegisterEvent indexes an ABI event definition by its topic0 selector.
func (r *ABIRegistry) RegisterEvent(e abi.Event) {
	r.events[e.ID] = e
}

// RegisterMethod indexes an ABI method definition by its 4-byte selector,
// used to decode trace call input/output for trace events.
func (r *ABIRegistry) RegisterMethod(m abi.Method) {
	var sel [4]byte
	copy(sel[:], m.ID)
	r.methods[sel] = m
}

// DecodeEvents implements spec §4.3 decodeEvents: for each RawEvent, looks up
// the matching ABI definition and unpacks the indexed/non-indexed arguments
// into a map[string]any. Events whose source has no registered ABI are
// skipped rather than failing the whole batch.
func DecodeEvents(registry *ABIRegistry, raw []chainmodel.RawEvent) ([]chainmodel.Event, error) {
	decoded := make([]chainmodel.Event, 0, len(raw))
	for _, r := range raw {
		switch {
		case r.Log != nil:
			args, err := decodeLogFields(registry, r.Log.Topics, r.Log.Data)
			if err != nil {
				if _, ok := err.(*ErrNoABIMatch); ok {
					continue
				}
				return nil, err
			}
			decoded = append(decoded, chainmodel.Event{RawEvent: r, DecodedArgs: args})
		case r.Trace != nil:
			args, output, err := decodeTrace(registry, *r.Trace)
			if err != nil {
				if _, ok := err.(*ErrNoABIMatch); ok {
					continue
				}
				return nil, err
			}
			decoded = append(decoded, chainmodel.Event{RawEvent: r, DecodedArgs: args, DecodedOutput: output})
		default:
			// Block and transaction events carry no ABI-decoded payload; the
			// handler receives the raw block/transaction/receipt as-is.
			decoded = append(decoded, chainmodel.Event{RawEvent: r})
		}
	}
	return decoded, nil
}

func decodeLogFields(registry *ABIRegistry, topics []common.Hash, data []byte) (map[string]any, error) {
	if len(topics) == 0 {
		return nil, &ErrNoABIMatch{}
	}
	ev, ok := registry.events[topics[0]]
	if !ok {
		return nil, &ErrNoABIMatch{Selector: topics[0].Hex()}
	}

	args := make(map[string]any)
	indexed := 1
	var nonIndexed abi.Arguments
	for _, input := range ev.Inputs {
		if input.Indexed {
			if indexed < len(topics) {
				v, err := decodeIndexedTopic(input, topics[indexed])
				if err != nil {
					return nil, fmt.Errorf("pipeline: decoding indexed arg %q of %s: %w", input.Name, ev.Name, err)
				}
				args[input.Name] = v
			}
			indexed++
		} else {
			nonIndexed = append(nonIndexed, input)
		}
	}

	if len(nonIndexed) > 0 {
		values, err := nonIndexed.Unpack(data)
		if err != nil {
			return nil, fmt.Errorf("pipeline: unpacking non-indexed args of %s: %w", ev.Name, err)
		}
		for i, input := range nonIndexed {
			args[input.Name] = values[i]
		}
	}

	return args, nil
}

func decodeIndexedTopic(arg abi.Argument, topic common.Hash) (any, error) {
	// Indexed dynamic types (string/bytes/array) are hashed in the topic and
	// cannot be recovered; go-ethereum's abi.ParseTopicsIntoMap decodes the
	// static cases and yields the raw topic hash for the dynamic ones.
	values := map[string]any{}
	if err := abi.ParseTopicsIntoMap(values, abi.Arguments{arg}, []common.Hash{topic}); err != nil {
		return topic, nil //nolint:nilerr // undecodable indexed type (e.g. tuple): surface the raw topic hash
	}
	return values[arg.Name], nil
}

func decodeTrace(registry *ABIRegistry, t chainmodel.Trace) (map[string]any, any, error) {
	if len(t.Input) < 4 {
		return nil, nil, &ErrNoABIMatch{}
	}
	var sel [4]byte
	copy(sel[:], t.Input[:4])
	m, ok := registry.methods[sel]
	if !ok {
		return nil, nil, &ErrNoABIMatch{Selector: fmt.Sprintf("0x%x", sel)}
	}

	argValues, err := m.Inputs.Unpack(t.Input[4:])
	if err != nil {
		return nil, nil, fmt.Errorf("pipeline: unpacking call input for %s: %w", m.Name, err)
	}
	args := make(map[string]any, len(argValues))
	for i, input := range m.Inputs {
		args[input.Name] = argValues[i]
	}

	var output any
	if len(t.Output) > 0 && len(m.Outputs) > 0 {
		outValues, err := m.Outputs.Unpack(t.Output)
		if err != nil {
			return nil, nil, fmt.Errorf("pipeline: unpacking call output for %s: %w", m.Name, err)
		}
		outMap := make(map[string]any, len(outValues))
		for i, o := range m.Outputs {
			name := o.Name
			if name == "" {
				name = fmt.Sprintf("arg%d", i)
			}
			outMap[name] = outValues[i]
		}
		output = outMap
	}

	return args, output, nil
}
