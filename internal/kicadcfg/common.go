package kicadcfg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// CorruptConfigError reports a kicad_common.json that is not a JSON object.
// The file is never written when this error is returned.
type CorruptConfigError struct {
	Path string
	Err  error
}

func (e *CorruptConfigError) Error() string {
	return fmt.Sprintf("kicadcfg: %s is corrupted or invalid: %v", e.Path, e.Err)
}

func (e *CorruptConfigError) Unwrap() error { return e.Err }

// commonConfig is a fully loaded kicad_common.json. Unknown keys survive a
// round trip; numbers keep their original text.
type commonConfig struct {
	path string
	perm os.FileMode
	data map[string]any
}

func loadCommonConfig(path string) (*commonConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, &CorruptConfigError{Path: path, Err: err}
	}
	if dec.More() {
		return nil, &CorruptConfigError{Path: path, Err: fmt.Errorf("trailing data after top-level object")}
	}
	if data == nil {
		return nil, &CorruptConfigError{Path: path, Err: fmt.Errorf("top level is not an object")}
	}
	return &commonConfig{path: path, perm: info.Mode().Perm(), data: data}, nil
}

// vars returns environment.vars, creating both maps when absent or null.
func (c *commonConfig) vars() (map[string]any, error) {
	env, err := childObject(c.data, "environment")
	if err != nil {
		return nil, &CorruptConfigError{Path: c.path, Err: err}
	}
	vars, err := childObject(env, "vars")
	if err != nil {
		return nil, &CorruptConfigError{Path: c.path, Err: err}
	}
	return vars, nil
}

// existingVars is vars without creating anything.
func (c *commonConfig) existingVars() map[string]any {
	env, _ := c.data["environment"].(map[string]any)
	vars, _ := env["vars"].(map[string]any)
	return vars
}

func childObject(parent map[string]any, key string) (map[string]any, error) {
	switch v := parent[key].(type) {
	case map[string]any:
		return v, nil
	case nil:
		child := make(map[string]any)
		parent[key] = child
		return child, nil
	default:
		return nil, fmt.Errorf("%q is %T, not an object", key, v)
	}
}

// save rewrites the whole file with four-space indentation.
func (c *commonConfig) save() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(c.data); err != nil {
		return err
	}
	return os.WriteFile(c.path, buf.Bytes(), c.perm)
}
