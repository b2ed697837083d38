package session

import (
	"strings"

	"github.com/bashup/dotenv/internal/envfile"
)

// ParseOps interprets the argument forms of the set command:
//
//	KEY=VALUE   set the value
//	+KEY=VALUE  set only if the key is absent
//	KEY         delete the key
//
// An empty or whitespace-containing key is rejected here; the patch engine
// itself treats operation validity as a caller concern.
func ParseOps(specs []string) ([]envfile.Op, error) {
	ops := make([]envfile.Op, 0, len(specs))
	for _, spec := range specs {
		op, err := parseOp(spec)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func parseOp(spec string) (envfile.Op, error) {
	mode := envfile.OpSet
	body := spec
	if strings.HasPrefix(body, "+") {
		mode = envfile.OpDefault
		body = body[1:]
	}

	key, value, found := strings.Cut(body, "=")
	if !found {
		if mode == envfile.OpDefault {
			// "+KEY" without a value has no meaning
			return envfile.Op{}, &InvalidKeyError{Key: spec}
		}
		mode = envfile.OpDelete
	}

	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, " \t") {
		return envfile.Op{}, &InvalidKeyError{Key: key}
	}

	return envfile.Op{Key: key, Value: value, Mode: mode}, nil
}
