// Package buffer defines the text buffer interface and its line-slice
// implementation.
package buffer

import "github.com/seagrine/hem/internal/types"

// Buffer is the storage interface the editor core works against.
// Positions use 0-based line and rune-column indices. Modifications
// return an EditInfo describing the change in both byte offsets and
// positions.
type Buffer interface {
	Load(filePath string) error
	Save(filePath string) error
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	Insert(pos types.Position, text []byte) (types.EditInfo, error)
	Delete(start, end types.Position) (types.EditInfo, error)
	Bytes() []byte
	FilePath() string
	IsModified() bool
}
