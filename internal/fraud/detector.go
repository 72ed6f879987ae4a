// Package fraud valida la consistencia y credibilidad de las respuestas
// de una sesión. Cinco analizadores independientes marcan patrones
// sospechosos; la suma ponderada por severidad de todas las marcas es el
// fraud score de la sesión.
package fraud

import (
	"fmt"
	"math"
	"sync"

	"psymetric/internal/domain"
)

// Thresholds ajusta los analizadores individuales.
type Thresholds struct {
	// MinResponseTimeMs marca una respuesta como sospechosamente rápida.
	MinResponseTimeMs float64
	// MaxResponseTimeCV marca el timing como demasiado uniforme por
	// debajo de este coeficiente de variación.
	MaxResponseTimeCV float64
	// SameAnswerRatio marca la sesión cuando un mismo valor de respuesta
	// supera esta proporción del total.
	SameAnswerRatio float64
	// PatternRepeatLength es el largo de ventana para detectar
	// secuencias repetidas.
	PatternRepeatLength int
	// ExtremeAnswerRatio marca sesiones likert que responden solo los
	// extremos de la escala por encima de esta proporción.
	ExtremeAnswerRatio float64
	// ScaleStdevLimit marca una escala como internamente inconsistente
	// por encima de esta desviación estándar muestral (base likert de 5).
	ScaleStdevLimit float64
	// MinTotalTimeRatio y MaxTotalTimeRatio acotan el tiempo total
	// contra la duración esperada del instrumento.
	MinTotalTimeRatio float64
	MaxTotalTimeRatio float64
	// TypingCVLimit marca los intervalos de tecleo como de bot por
	// debajo de este coeficiente de variación.
	TypingCVLimit float64
	// PasteRatio marca los eventos de pegado por encima de esta
	// proporción de respuestas tipeadas.
	PasteRatio float64
	// TabSwitchLimit marca sesiones que superan este número de cambios
	// de pestaña.
	TabSwitchLimit int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MinResponseTimeMs:   500,
		MaxResponseTimeCV:   0.15,
		SameAnswerRatio:     0.8,
		PatternRepeatLength: 4,
		ExtremeAnswerRatio:  0.7,
		ScaleStdevLimit:     2.0,
		MinTotalTimeRatio:   0.3,
		MaxTotalTimeRatio:   5.0,
		TypingCVLimit:       0.1,
		PasteRatio:          0.5,
		TabSwitchLimit:      10,
	}
}

// Detector corre el análisis completo sobre las respuestas de una sesión.
type Detector struct {
	thresholds Thresholds
}

func NewDetector() *Detector {
	return &Detector{thresholds: DefaultThresholds()}
}

func NewDetectorWithThresholds(t Thresholds) *Detector {
	return &Detector{thresholds: t}
}

// Analyze es pura sobre sus entradas y segura para uso concurrente. Las
// detecciones se reportan en un orden fijo de analizador, sin importar el
// scheduling.
func (d *Detector) Analyze(sessionID string, responses []domain.Response, session domain.SessionInfo) domain.FraudAnalysis {
	analyzers := []func([]domain.Response, domain.SessionInfo) []domain.Detection{
		d.analyzeResponseTimes,
		d.analyzeAnswerPatterns,
		d.analyzeConsistency,
		d.analyzeTotalTime,
		d.analyzeTypingPatterns,
	}

	results := make([][]domain.Detection, len(analyzers))
	var wg sync.WaitGroup
	for i, analyze := range analyzers {
		wg.Add(1)
		go func(slot int, analyze func([]domain.Response, domain.SessionInfo) []domain.Detection) {
			defer wg.Done()
			results[slot] = analyze(responses, session)
		}(i, analyze)
	}
	wg.Wait()

	detections := []domain.Detection{}
	for _, r := range results {
		detections = append(detections, r...)
	}

	score := fraudScore(detections)
	return domain.FraudAnalysis{
		SessionID:      sessionID,
		FraudScore:     score,
		RiskLevel:      domain.RiskLevelFor(score),
		Detections:     detections,
		Recommendation: recommendation(score),
	}
}

// Summarize reconstruye el veredicto a partir de detecciones ya
// persistidas y el score guardado en la sesión, sin volver a analizar.
func Summarize(sessionID string, score float64, detections []domain.Detection) domain.FraudAnalysis {
	if detections == nil {
		detections = []domain.Detection{}
	}
	return domain.FraudAnalysis{
		SessionID:      sessionID,
		FraudScore:     score,
		RiskLevel:      domain.RiskLevelFor(score),
		Detections:     detections,
		Recommendation: recommendation(score),
	}
}

func fraudScore(detections []domain.Detection) float64 {
	total := 0.0
	for _, det := range detections {
		weight, ok := domain.SeverityWeight[det.Severity]
		if !ok {
			weight = domain.SeverityWeight[domain.SeverityLow]
		}
		total += weight
	}
	if total > 100 {
		return 100
	}
	return total
}

func recommendation(score float64) string {
	switch domain.RiskLevelFor(score) {
	case domain.RiskHigh:
		return "Result reliability is low. A retake is recommended."
	case domain.RiskMedium:
		return "Some response patterns are abnormal. Interpret the results with caution."
	case domain.RiskLow:
		return "Minor anomalies were detected, but the results are largely trustworthy."
	default:
		return "Response patterns look normal. The results can be trusted."
	}
}

func (d *Detector) analyzeResponseTimes(responses []domain.Response, _ domain.SessionInfo) []domain.Detection {
	times := []float64{}
	for _, r := range responses {
		if r.ResponseTimeMs > 0 {
			times = append(times, float64(r.ResponseTimeMs))
		}
	}
	if len(times) == 0 {
		return nil
	}

	detections := []domain.Detection{}
	avg := mean(times)
	cv := 0.0
	if avg > 0 {
		cv = stdev(times) / avg
	}

	fastCount := 0
	for _, t := range times {
		if t < d.thresholds.MinResponseTimeMs {
			fastCount++
		}
	}
	if float64(fastCount) > float64(len(times))*0.2 {
		ratio := float64(fastCount) / float64(len(times)) * 100
		detections = append(detections, domain.Detection{
			Type:        "fast_responses",
			Severity:    domain.SeverityHigh,
			Description: fmt.Sprintf("%.1f%% of responses were abnormally fast", ratio),
			Details: map[string]any{
				"count":        fastCount,
				"threshold_ms": d.thresholds.MinResponseTimeMs,
			},
		})
	}

	if cv < d.thresholds.MaxResponseTimeCV && len(times) > 5 {
		detections = append(detections, domain.Detection{
			Type:        "consistent_timing",
			Severity:    domain.SeverityMedium,
			Description: fmt.Sprintf("response timing is abnormally uniform (CV=%.3f)", cv),
			Details:     map[string]any{"cv": cv, "avg_ms": avg},
		})
	}
	return detections
}

func (d *Detector) analyzeAnswerPatterns(responses []domain.Response, _ domain.SessionInfo) []domain.Detection {
	if len(responses) == 0 {
		return nil
	}

	detections := []domain.Detection{}
	keys := make([]string, len(responses))
	counts := map[string]int{}
	for i, r := range responses {
		keys[i] = answerKey(r.Answer)
		counts[keys[i]]++
	}

	maxSame := 0
	for _, n := range counts {
		if n > maxSame {
			maxSame = n
		}
	}
	sameRatio := float64(maxSame) / float64(len(keys))
	if sameRatio > d.thresholds.SameAnswerRatio {
		detections = append(detections, domain.Detection{
			Type:        "same_answer_pattern",
			Severity:    domain.SeverityCritical,
			Description: fmt.Sprintf("%.1f%% of answers are identical", sameRatio*100),
			Details:     map[string]any{"same_ratio": sameRatio, "most_common_count": maxSame},
		})
	}

	patternLen := d.thresholds.PatternRepeatLength
	for i := 0; i+patternLen*2 <= len(keys); i++ {
		if sequencesEqual(keys[i:i+patternLen], keys[i+patternLen:i+patternLen*2]) {
			detections = append(detections, domain.Detection{
				Type:        "repeating_pattern",
				Severity:    domain.SeverityHigh,
				Description: fmt.Sprintf("repeating answer sequence detected at position %d", i),
				Details:     map[string]any{"position": i, "length": patternLen},
			})
			break
		}
	}

	numericCount, extremeCount := 0, 0
	for _, r := range responses {
		f, ok := r.Answer.Float()
		if !ok {
			continue
		}
		numericCount++
		if f == 1 || f == 5 {
			extremeCount++
		}
	}
	if numericCount > 0 && float64(extremeCount) > float64(numericCount)*d.thresholds.ExtremeAnswerRatio {
		detections = append(detections, domain.Detection{
			Type:        "extreme_answers",
			Severity:    domain.SeverityMedium,
			Description: fmt.Sprintf("high share of extreme answers (%d/%d)", extremeCount, numericCount),
			Details:     map[string]any{"extreme_count": extremeCount},
		})
	}
	return detections
}

// analyzeConsistency agrupa respuestas numéricas por la escala a la que
// aportan y marca las escalas cuyas respuestas se dispersan demasiado en
// base 5.
func (d *Detector) analyzeConsistency(responses []domain.Response, _ domain.SessionInfo) []domain.Detection {
	scaleAnswers := map[string][]float64{}
	scaleOrder := []string{}
	for _, r := range responses {
		f, numeric := r.Answer.Float()
		for scale := range r.Weights {
			if _, structural := domain.StructuralKeys[scale]; structural {
				continue
			}
			if _, seen := scaleAnswers[scale]; !seen {
				scaleOrder = append(scaleOrder, scale)
				scaleAnswers[scale] = nil
			}
			if numeric {
				scaleAnswers[scale] = append(scaleAnswers[scale], f)
			}
		}
	}

	inconsistent := []string{}
	for _, scale := range scaleOrder {
		answers := scaleAnswers[scale]
		if len(answers) >= 3 && stdev(answers) > d.thresholds.ScaleStdevLimit {
			inconsistent = append(inconsistent, scale)
		}
	}

	if len(inconsistent) > 2 {
		return []domain.Detection{{
			Type:        "inconsistent_responses",
			Severity:    domain.SeverityMedium,
			Description: fmt.Sprintf("inconsistent answers across %d scales", len(inconsistent)),
			Details:     map[string]any{"scales": inconsistent},
		}}
	}
	return nil
}

func (d *Detector) analyzeTotalTime(responses []domain.Response, session domain.SessionInfo) []domain.Detection {
	expectedMinutes := session.ExpectedMinutes
	if expectedMinutes <= 0 {
		expectedMinutes = 15
	}
	expectedMs := float64(expectedMinutes) * 60 * 1000

	totalMs := 0.0
	for _, r := range responses {
		totalMs += float64(r.ResponseTimeMs)
	}
	if totalMs <= 0 {
		return nil
	}

	ratio := totalMs / expectedMs
	switch {
	case ratio < d.thresholds.MinTotalTimeRatio:
		return []domain.Detection{{
			Type:        "too_fast_completion",
			Severity:    domain.SeverityCritical,
			Description: fmt.Sprintf("completed in %.1f%% of the expected time", ratio*100),
			Details:     map[string]any{"expected_ms": expectedMs, "actual_ms": totalMs},
		}}
	case ratio > d.thresholds.MaxTotalTimeRatio:
		return []domain.Detection{{
			Type:        "too_slow_completion",
			Severity:    domain.SeverityLow,
			Description: fmt.Sprintf("took %.1f%% of the expected time, session may have been interrupted", ratio*100),
			Details:     map[string]any{"expected_ms": expectedMs, "actual_ms": totalMs},
		}}
	}
	return nil
}

func (d *Detector) analyzeTypingPatterns(responses []domain.Response, _ domain.SessionInfo) []domain.Detection {
	patterns := []*domain.TypingPattern{}
	for _, r := range responses {
		if r.TypingPattern != nil {
			patterns = append(patterns, r.TypingPattern)
		}
	}
	if len(patterns) == 0 {
		return nil
	}

	detections := []domain.Detection{}
	intervals := []float64{}
	for _, tp := range patterns {
		intervals = append(intervals, tp.KeyIntervals...)
	}

	if len(intervals) > 10 {
		avg := mean(intervals)
		cv := 0.0
		if avg > 0 {
			cv = stdev(intervals) / avg
		}
		if cv < d.thresholds.TypingCVLimit {
			detections = append(detections, domain.Detection{
				Type:        "bot_like_typing",
				Severity:    domain.SeverityCritical,
				Description: "keystroke intervals are abnormally uniform",
				Details:     map[string]any{"cv": cv, "avg_interval_ms": avg},
			})
		}

		pasteEvents := 0
		for _, tp := range patterns {
			pasteEvents += tp.PasteCount
		}
		if float64(pasteEvents) > float64(len(patterns))*d.thresholds.PasteRatio {
			detections = append(detections, domain.Detection{
				Type:        "copy_paste_detected",
				Severity:    domain.SeverityHigh,
				Description: fmt.Sprintf("%d paste events detected", pasteEvents),
				Details:     map[string]any{"paste_count": pasteEvents},
			})
		}
	}

	tabSwitches := 0
	for _, tp := range patterns {
		tabSwitches += tp.TabSwitches
	}
	if tabSwitches > d.thresholds.TabSwitchLimit {
		detections = append(detections, domain.Detection{
			Type:        "tab_switching",
			Severity:    domain.SeverityMedium,
			Description: fmt.Sprintf("%d tab switches detected", tabSwitches),
			Details:     map[string]any{"tab_switch_count": tabSwitches},
		})
	}
	return detections
}

// answerKey canonicaliza una respuesta para contar igualdad entre las
// formas mixtas en que llegan los valores.
func answerKey(a domain.Answer) string {
	return fmt.Sprintf("%v", a.Value())
}

func sequencesEqual(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdev es la desviación estándar muestral; cero con menos de dos valores.
func stdev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	avg := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - avg
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
