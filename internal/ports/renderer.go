package ports

import (
	"context"

	"github.com/alejandrodnm/tradedash/internal/domain"
)

// Renderer presenta una sesión cargada y sus métricas al usuario.
type Renderer interface {
	// Render dibuja el dashboard para la sesión dada. Con Summary.Empty
	// debe producir un estado "no data" explícito, nunca fallar.
	Render(ctx context.Context, s *domain.Session, sum domain.Summary) error
}
