package tx

import (
	"fmt"

	"github.com/btcsuite/btcd/txscript"
)

// BuildOPReturnScript constructs the data-carrier script: OP_RETURN followed
// by a single canonical push of the payload. AddFullData is used instead of
// NullDataScript so payloads above the 80-byte relay policy can still be
// built when the caller has explicitly opted in; the policy check itself
// lives in Build.
func BuildOPReturnScript(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrScriptBuild)
	}
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_RETURN).
		AddFullData(payload).
		Script()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScriptBuild, err)
	}
	return script, nil
}

// ParseOPReturnScript extracts the payload from a data-carrier script.
// It accepts the three canonical push encodings (direct, PUSHDATA1,
// PUSHDATA2) that BuildOPReturnScript can emit.
func ParseOPReturnScript(script []byte) ([]byte, error) {
	if len(script) < 2 || script[0] != txscript.OP_RETURN {
		return nil, fmt.Errorf("%w: missing OP_RETURN prefix", ErrInvalidOPReturn)
	}

	var start, length int
	switch op := script[1]; {
	case op >= 1 && op <= txscript.OP_DATA_75:
		start, length = 2, int(op)
	case op == txscript.OP_PUSHDATA1:
		if len(script) < 3 {
			return nil, fmt.Errorf("%w: truncated PUSHDATA1", ErrInvalidOPReturn)
		}
		start, length = 3, int(script[2])
	case op == txscript.OP_PUSHDATA2:
		if len(script) < 4 {
			return nil, fmt.Errorf("%w: truncated PUSHDATA2", ErrInvalidOPReturn)
		}
		start, length = 4, int(script[2])|int(script[3])<<8
	default:
		return nil, fmt.Errorf("%w: unexpected opcode 0x%02x", ErrInvalidOPReturn, op)
	}

	if len(script) < start+length {
		return nil, fmt.Errorf("%w: script shorter than declared push", ErrInvalidOPReturn)
	}
	payload := make([]byte, length)
	copy(payload, script[start:start+length])
	return payload, nil
}

// IsOPReturnScript reports whether script is a data-carrier script.
func IsOPReturnScript(script []byte) bool {
	return len(script) > 0 && script[0] == txscript.OP_RETURN
}
