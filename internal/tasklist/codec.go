package tasklist

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/tada/internal/model"
)

var (
	// ErrDecode marks a snapshot that is present but unparsable.
	ErrDecode = errors.New("decode snapshot")
	// ErrEncode marks a list that could not be serialized.
	ErrEncode = errors.New("encode snapshot")
)

// Codec turns a task list into a snapshot and back.
// Decode(Encode(l)) must reproduce l exactly.
type Codec interface {
	Name() string
	Encode(tasks []model.Task) ([]byte, error)
	Decode(b []byte) ([]model.Task, error)
}

// JSONCodec encodes the list as a JSON array.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: json marshal: %v", ErrEncode, err)
	}
	return b, nil
}

func (JSONCodec) Decode(b []byte) ([]model.Task, error) {
	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrDecode, err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// YAMLCodec encodes the list as a YAML sequence using the same field names.
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }

func (YAMLCodec) Encode(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := yaml.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("%w: yaml marshal: %v", ErrEncode, err)
	}
	return b, nil
}

func (YAMLCodec) Decode(b []byte) ([]model.Task, error) {
	var tasks []model.Task
	if err := yaml.Unmarshal(b, &tasks); err != nil {
		return nil, fmt.Errorf("%w: yaml unmarshal: %v", ErrDecode, err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// CodecByName resolves a configured format name.
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return JSONCodec{}, nil
	case "yaml", "yml":
		return YAMLCodec{}, nil
	}
	return nil, fmt.Errorf("unknown snapshot format %q", name)
}
