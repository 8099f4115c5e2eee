// File path: internal/prompt/formatter.go
package prompt

import (
	"fmt"
	"math"
	"strings"

	"github.com/nicodishanthj/fitsight/internal/activity"
	"github.com/nicodishanthj/fitsight/internal/trend"
)

const (
	// notAvailable renders in place of any metric the device did not record.
	notAvailable = "n/a"

	intervalHRSpread   = 30.0
	thresholdHRGap     = 15.0
	thresholdHRFloor   = 140.0
	hillGainPerKm      = 20.0
	confidenceFormHint = "Finish your reply with a confidence tag in the exact form [CONFIDENCE: 0.85]."
)

// Format renders an activity and its optional trend context into the request
// sent to the generation provider. The output is deterministic for a given
// input and never fails on missing metrics.
func Format(act activity.Activity, trendCtx *trend.Context) string {
	var b strings.Builder
	b.WriteString("You are a concise running coach. Review the workout below and write a short, specific insight (3-4 sentences) about what the session shows about current fitness and what to focus on next.\n\n")
	fmt.Fprintf(&b, "Activity: %s (%s) on %s\n", act.Name, act.Type, act.StartTime.Format("2006-01-02"))
	b.WriteString("Metrics:\n")
	fmt.Fprintf(&b, "- Distance: %s km\n", formatScaled(act.Distance, 0.001, 2))
	fmt.Fprintf(&b, "- Duration: %s min\n", formatScaled(act.Duration, 1.0/60.0, 1))
	fmt.Fprintf(&b, "- Avg pace: %s\n", formatPace(act.AverageSpeed))
	fmt.Fprintf(&b, "- Avg HR: %s bpm, Max HR: %s bpm\n", formatMetric(act.AverageHR, 0), formatMetric(act.MaxHR, 0))
	fmt.Fprintf(&b, "- Avg cadence: %s spm\n", formatMetric(act.AverageCadence, 0))
	fmt.Fprintf(&b, "- Elevation gain: %s m\n", formatMetric(act.ElevationGain, 0))
	fmt.Fprintf(&b, "- Avg power: %s W, Max power: %s W\n", formatMetric(act.AveragePower, 0), formatMetric(act.MaxPower, 0))
	fmt.Fprintf(&b, "- Training effect: aerobic %s, anaerobic %s\n", formatMetric(act.AerobicEffect, 1), formatMetric(act.AnaerobicEffect, 1))
	fmt.Fprintf(&b, "- Stamina: start %s%%, end %s%%\n", formatMetric(act.BeginStamina, 0), formatMetric(act.EndStamina, 0))
	fmt.Fprintf(&b, "- Avg temperature: %s C\n", formatMetric(act.AverageTemperature, 0))

	if hints := workoutHints(act); len(hints) > 0 {
		b.WriteString("Workout profile hints: ")
		b.WriteString(strings.Join(hints, "; "))
		b.WriteString("\n")
	}

	if trendCtx != nil && !trendCtx.Empty() {
		b.WriteString("\nTrend context (positive percentages mean the value went up):\n")
		if trendCtx.Yesterday != nil {
			writeComparison(&b, fmt.Sprintf("vs yesterday (%s)", trendCtx.Yesterday.Name), act, *trendCtx.Yesterday)
		}
		if trendCtx.LastWeek != nil {
			writeComparison(&b, fmt.Sprintf("vs same weekday last week (%s)", trendCtx.LastWeek.Name), act, *trendCtx.LastWeek)
		}
		if len(trendCtx.Recent) > 0 {
			avg := recentAverage(trendCtx.Recent)
			writeComparison(&b, fmt.Sprintf("vs recent average (last %d %s activities)", len(trendCtx.Recent), act.Type), act, avg)
		}
	}

	b.WriteString("\n")
	b.WriteString(confidenceFormHint)
	return b.String()
}

// FormatTrendComparison renders one metric trend line as a signed percentage
// with a direction marker. The marker flips for metrics where lower is
// better. The empty string is returned whenever either operand is missing or
// the previous value is zero, so no NaN or Inf ever reaches the prompt.
func FormatTrendComparison(label string, current, previous *float64, lowerIsBetter bool) string {
	cur, okCur := activity.Float(current)
	prev, okPrev := activity.Float(previous)
	if !okCur || !okPrev || prev == 0 || cur == 0 {
		return ""
	}
	pct := (cur - prev) / prev * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return ""
	}
	marker := "improved"
	if (pct > 0) == lowerIsBetter {
		marker = "declined"
	}
	if pct == 0 {
		marker = "unchanged"
	}
	return fmt.Sprintf("%s: %+.1f%% (%s)", label, pct, marker)
}

func writeComparison(b *strings.Builder, heading string, current, previous activity.Activity) {
	lines := make([]string, 0, 3)
	if line := FormatTrendComparison("pace", activity.PaceMinPerKm(current.AverageSpeed), activity.PaceMinPerKm(previous.AverageSpeed), true); line != "" {
		lines = append(lines, line)
	}
	if line := FormatTrendComparison("avg HR", current.AverageHR, previous.AverageHR, true); line != "" {
		lines = append(lines, line)
	}
	if line := FormatTrendComparison("distance", current.Distance, previous.Distance, false); line != "" {
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", heading, strings.Join(lines, ", "))
}

// workoutHints derives rule-based session descriptors from metric thresholds.
// The hints steer the model toward the right workout vocabulary without
// depending on it to infer structure from raw numbers.
func workoutHints(act activity.Activity) []string {
	var hints []string
	avgHR, okAvg := activity.Float(act.AverageHR)
	maxHR, okMax := activity.Float(act.MaxHR)
	if okAvg && okMax && maxHR-avgHR > intervalHRSpread {
		hints = append(hints, "large HR spread suggests interval work")
	}
	if okAvg && okMax && maxHR-avgHR <= thresholdHRGap && avgHR > thresholdHRFloor {
		hints = append(hints, "sustained HR near max suggests a threshold effort")
	}
	gain, okGain := activity.Float(act.ElevationGain)
	dist, okDist := activity.Float(act.Distance)
	if okGain && okDist && dist > 0 && gain/(dist/1000) > hillGainPerKm {
		hints = append(hints, "high climb rate suggests a hilly route")
	}
	return hints
}

// recentAverage folds the recent activities into a synthetic comparison
// activity holding the mean of each metric that is present somewhere in the
// window. Metrics absent from every activity stay nil.
func recentAverage(recent []activity.Activity) activity.Activity {
	avg := activity.Activity{Name: "recent average"}
	avg.AverageSpeed = meanOf(recent, func(a activity.Activity) *float64 { return a.AverageSpeed })
	avg.AverageHR = meanOf(recent, func(a activity.Activity) *float64 { return a.AverageHR })
	avg.Distance = meanOf(recent, func(a activity.Activity) *float64 { return a.Distance })
	return avg
}

func meanOf(acts []activity.Activity, pick func(activity.Activity) *float64) *float64 {
	var sum float64
	var count int
	for _, a := range acts {
		if v, ok := activity.Float(pick(a)); ok {
			sum += v
			count++
		}
	}
	if count == 0 {
		return nil
	}
	mean := sum / float64(count)
	return &mean
}

func formatMetric(v *float64, decimals int) string {
	value, ok := activity.Float(v)
	if !ok {
		return notAvailable
	}
	return fmt.Sprintf("%.*f", decimals, value)
}

func formatScaled(v *float64, scale float64, decimals int) string {
	value, ok := activity.Float(v)
	if !ok {
		return notAvailable
	}
	return fmt.Sprintf("%.*f", decimals, value*scale)
}

func formatPace(speed *float64) string {
	pace := activity.PaceMinPerKm(speed)
	if pace == nil {
		return notAvailable
	}
	minutes := int(*pace)
	seconds := int(math.Round((*pace - float64(minutes)) * 60))
	if seconds == 60 {
		minutes++
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d min/km", minutes, seconds)
}
