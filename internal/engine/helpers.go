package engine

import (
	"math"
	"sort"

	"psymetric/internal/domain"
)

// rankEntry es una categoría dentro de un resultado compuesto por ranking.
type rankEntry struct {
	Code  string
	Score float64
}

// rankDesc ordena por puntaje descendente y código ascendente en empates,
// para que los resultados compuestos sean reproducibles sin importar el
// orden de entrada.
func rankDesc(scores map[string]float64) []rankEntry {
	entries := make([]rankEntry, 0, len(scores))
	for code, s := range scores {
		entries = append(entries, rankEntry{Code: code, Score: s})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Code < entries[j].Code
	})
	return entries
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// numeric relee una entrada numérica de raw scores persistidos, aceptando
// los tipos que puede producir un round-trip por JSONB.
func numeric(raw domain.RawScores, key string) (float64, bool) {
	switch v := raw[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	}
	return 0, false
}

// anyNumericMap convierte un mapa de puntajes persistido de vuelta a
// map[string]float64, aceptando tanto la forma en memoria como el
// map[string]any que produce un round-trip por JSONB.
func anyNumericMap(v any) map[string]float64 {
	out := map[string]float64{}
	switch m := v.(type) {
	case map[string]float64:
		for k, val := range m {
			out[k] = val
		}
	case map[string]any:
		for k, val := range m {
			if f, ok := val.(float64); ok {
				out[k] = f
			}
		}
	}
	return out
}

// anyStringList recupera una lista de strings persistida desde sus posibles
// formas decodificadas.
func anyStringList(v any) []string {
	switch l := v.(type) {
	case []string:
		return l
	case []any:
		out := make([]string, 0, len(l))
		for _, item := range l {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// accumulate pliega la tabla de pesos de cada respuesta en puntajes por
// código. Las respuestas numéricas multiplican pesos numéricos; las de
// string indexan tablas; los desajustes no aportan. Las claves
// estructurales se saltean.
func accumulate(scores map[string]float64, responses []domain.Response) {
	for _, r := range responses {
		if r.Answer.IsNull() {
			continue
		}
		for key, w := range r.Weights {
			if _, structural := domain.StructuralKeys[key]; structural {
				continue
			}
			if _, tracked := scores[key]; !tracked {
				continue
			}
			scores[key] += w.Apply(r.Answer)
		}
	}
}
