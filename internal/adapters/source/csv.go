package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alejandrodnm/tradedash/internal/domain"
	"github.com/alejandrodnm/tradedash/internal/tabular"
)

// CSV implementa ports.DatasetSource leyendo los dos CSVs que emite el
// motor de backtest desde un directorio fijo. Ambos archivos tienen que
// existir para que la carga proceda — barrera "los dos o ninguno".
type CSV struct {
	dir        string
	tradesFile string
	equityFile string
}

// NewCSV crea un source sobre el directorio dado.
func NewCSV(dir, tradesFile, equityFile string) *CSV {
	return &CSV{dir: dir, tradesFile: tradesFile, equityFile: equityFile}
}

// Load lee y convierte ambos datasets. Si cualquiera de los dos archivos
// no existe devuelve Found=false sin error: el sistema queda idle a la
// espera de una vía de datos alternativa. Un archivo presente pero con
// campos inválidos sí es un error.
func (c *CSV) Load(_ context.Context) (domain.LoadResult, error) {
	tradesPath := filepath.Join(c.dir, c.tradesFile)
	equityPath := filepath.Join(c.dir, c.equityFile)

	tradesRaw, tradesOK, err := readIfExists(tradesPath)
	if err != nil {
		return domain.LoadResult{}, err
	}
	equityRaw, equityOK, err := readIfExists(equityPath)
	if err != nil {
		return domain.LoadResult{}, err
	}

	if !tradesOK || !equityOK {
		slog.Info("datasets not found, staying idle",
			"trades", tradesPath, "trades_found", tradesOK,
			"equity", equityPath, "equity_found", equityOK,
		)
		return domain.LoadResult{}, nil
	}

	trades, err := mapTrades(tabular.Parse(tradesRaw, ","))
	if err != nil {
		return domain.LoadResult{}, fmt.Errorf("source.CSV: %s: %w", c.tradesFile, err)
	}
	equity, err := mapEquity(tabular.Parse(equityRaw, ","))
	if err != nil {
		return domain.LoadResult{}, fmt.Errorf("source.CSV: %s: %w", c.equityFile, err)
	}

	slog.Info("datasets loaded", "trades", len(trades), "equity_points", len(equity))
	return domain.LoadResult{Found: true, Session: domain.NewSession(trades, equity)}, nil
}

// readIfExists devuelve (contenido, true) o ("", false) si el archivo no
// existe. Cualquier otro fallo de lectura sí se propaga.
func readIfExists(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("source.readIfExists: %q: %w", path, err)
	}
	return string(data), true, nil
}
