package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// WeightKind discrimina las tres formas de valor que puede tomar una
// entrada de scoring_weights.
type WeightKind int

const (
	// WeightNumber es un peso numérico plano; las respuestas numéricas lo
	// multiplican y las booleanas lo suman cuando son true.
	WeightNumber WeightKind = iota
	// WeightTable mapea valores de respuesta a pesos (preguntas
	// categóricas) o, en instrumentos de constitución, códigos de
	// subcategoría a pesos.
	WeightTable
	// WeightTag es metadata estructural (area, domain, position, field,
	// feature, type, correct_answer como texto). Los tags nunca aportan
	// puntaje por la vía genérica.
	WeightTag
)

// Weight es una entrada de la configuración de scoring de una pregunta:
// unión etiquetada de peso numérico, tabla categórica o tag estructural.
// El origen es JSON libre escrito junto a la pregunta; decodificarlo a un
// esquema explícito hace que la configuración malformada falle al cargar
// en vez de puntuar cero en silencio.
type Weight struct {
	Kind   WeightKind
	Number float64
	Table  map[string]float64
	Tag    string
}

func NumberWeight(v float64) Weight {
	return Weight{Kind: WeightNumber, Number: v}
}

func TableWeight(t map[string]float64) Weight {
	return Weight{Kind: WeightTable, Table: t}
}

func TagWeight(s string) Weight {
	return Weight{Kind: WeightTag, Tag: s}
}

func (w *Weight) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*w = NumberWeight(num)
		return nil
	}
	var table map[string]float64
	if err := json.Unmarshal(data, &table); err == nil {
		*w = TableWeight(table)
		return nil
	}
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		*w = TagWeight(tag)
		return nil
	}
	return fmt.Errorf("scoring weight must be a number, a string or an object of numbers, got %s", data)
}

func (w Weight) MarshalJSON() ([]byte, error) {
	switch w.Kind {
	case WeightNumber:
		return json.Marshal(w.Number)
	case WeightTable:
		return json.Marshal(w.Table)
	default:
		return json.Marshal(w.Tag)
	}
}

// Apply resuelve la contribución de una respuesta contra este peso.
// Un desajuste de tipos aporta cero: una respuesta de texto libre en una
// pregunta numérica nunca debe abortar el scoring.
func (w Weight) Apply(a Answer) float64 {
	switch w.Kind {
	case WeightNumber:
		if f, ok := a.Float(); ok {
			return w.Number * f
		}
		if b, ok := a.Bool(); ok && b {
			return w.Number
		}
	case WeightTable:
		if s, ok := a.String(); ok {
			return w.Table[s]
		}
		if b, ok := a.Bool(); ok {
			return w.Table[strconv.FormatBool(b)]
		}
		if f, ok := a.Float(); ok {
			return w.Table[strconv.FormatFloat(f, 'f', -1, 64)]
		}
	}
	return 0
}

// ScoringWeights es la configuración de scoring de una pregunta, indexada
// por código de escala (o por clave estructural como "area" o "position").
type ScoringWeights map[string]Weight

// StructuralKeys son las claves reservadas que llevan metadata de ruteo en
// lugar de pesos de escala. El análisis de consistencia entre escalas las
// ignora.
var StructuralKeys = map[string]struct{}{
	"area":           {},
	"domain":         {},
	"type":           {},
	"field":          {},
	"feature":        {},
	"position":       {},
	"correct_answer": {},
}

// Tag devuelve el valor string de una clave estructural, o fallback si la
// clave falta o no es un tag.
func (sw ScoringWeights) Tag(key, fallback string) string {
	if w, ok := sw[key]; ok && w.Kind == WeightTag {
		return w.Tag
	}
	return fallback
}

// Number devuelve el valor numérico guardado bajo key, si existe.
func (sw ScoringWeights) Number(key string) (float64, bool) {
	if w, ok := sw[key]; ok && w.Kind == WeightNumber {
		return w.Number, true
	}
	return 0, false
}
