package ports

import (
	"context"

	"github.com/alejandrodnm/tradedash/internal/domain"
)

// DatasetSource carga los dos datasets del backtest (log de trades y
// curva de equity) desde una ubicación fija.
type DatasetSource interface {
	// Load intenta cargar ambos datasets. Si cualquiera de los dos falta
	// devuelve Found=false sin error — la ausencia es una condición idle,
	// no un fallo. Un error solo indica datos presentes pero inválidos.
	Load(ctx context.Context) (domain.LoadResult, error)
}
