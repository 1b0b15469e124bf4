package ports

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
)

// Compiler transforms source text into output text. The engine treats it as
// an opaque function; the only contract is the result shape.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Compile transforms text. path locates the text on disk: it anchors
	// relative imports and appears in error locations. Returned include paths
	// are absolute. A rejected source is reported as *domain.CompileError.
	Compile(ctx context.Context, path, text string, opts domain.CompileOptions) (*domain.CompileResult, error)
}
