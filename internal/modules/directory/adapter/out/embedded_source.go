package out

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"diagnocare/internal/modules/directory/domain"
	directoryout "diagnocare/internal/modules/directory/port/out"
)

//go:embed specialists.yaml
var embeddedDirectory []byte

type directoryFile struct {
	Specialists []domain.Specialist `yaml:"specialists"`
}

// YAMLSource decodes a specialist directory once and serves copies of it.
type YAMLSource struct {
	raw []byte

	once sync.Once
	all  []domain.Specialist
	err  error
}

var _ directoryout.Source = (*YAMLSource)(nil)

// NewEmbeddedSource serves the directory compiled into the binary.
func NewEmbeddedSource() *YAMLSource {
	return NewYAMLSource(embeddedDirectory)
}

func NewYAMLSource(raw []byte) *YAMLSource {
	return &YAMLSource{raw: raw}
}

func (s *YAMLSource) All(context.Context) ([]domain.Specialist, error) {
	s.once.Do(func() {
		dec := yaml.NewDecoder(bytes.NewReader(s.raw))
		dec.KnownFields(true)
		var file directoryFile
		if err := dec.Decode(&file); err != nil {
			s.err = fmt.Errorf("decode specialist directory: %w", err)
			return
		}
		s.all = file.Specialists
	})
	if s.err != nil {
		return nil, s.err
	}
	return append([]domain.Specialist(nil), s.all...), nil
}
