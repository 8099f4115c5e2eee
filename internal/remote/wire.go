// File path: internal/remote/wire.go
package remote

import (
	"encoding/json"
	"time"

	"github.com/nicodishanthj/fitsight/internal/activity"
)

// wireActivity mirrors the remote service's activity payload. Identifiers
// arrive as JSON numbers on some endpoints and strings on others, and every
// metric is optional.
type wireActivity struct {
	ActivityID     flexID `json:"activityId"`
	ActivityName   string `json:"activityName"`
	Description    string `json:"description"`
	StartTimeLocal string `json:"startTimeLocal"`
	ActivityType   struct {
		TypeKey string `json:"typeKey"`
	} `json:"activityType"`

	Distance           *float64 `json:"distance"`
	Duration           *float64 `json:"duration"`
	AverageSpeed       *float64 `json:"averageSpeed"`
	MaxSpeed           *float64 `json:"maxSpeed"`
	AverageHR          *float64 `json:"averageHR"`
	MaxHR              *float64 `json:"maxHR"`
	AverageCadence     *float64 `json:"averageRunningCadenceInStepsPerMinute"`
	ElevationGain      *float64 `json:"elevationGain"`
	AveragePower       *float64 `json:"avgPower"`
	MaxPower           *float64 `json:"maxPower"`
	AerobicEffect      *float64 `json:"aerobicTrainingEffect"`
	AnaerobicEffect    *float64 `json:"anaerobicTrainingEffect"`
	BeginStamina       *float64 `json:"beginPotentialStamina"`
	EndStamina         *float64 `json:"endPotentialStamina"`
	AverageTemperature *float64 `json:"averageTemperature"`
	Calories           *float64 `json:"calories"`
}

// flexID tolerates identifiers encoded as either JSON numbers or strings.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*f = flexID(asString)
		return nil
	}
	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err != nil {
		return err
	}
	*f = flexID(asNumber.String())
	return nil
}

// startTimeLayouts lists the timestamp renderings observed from the service.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func (w wireActivity) toActivity() activity.Activity {
	act := activity.Activity{
		ID:                 activity.NormalizeID(string(w.ActivityID)),
		Name:               w.ActivityName,
		Type:               w.ActivityType.TypeKey,
		Distance:           w.Distance,
		Duration:           w.Duration,
		AverageSpeed:       w.AverageSpeed,
		MaxSpeed:           w.MaxSpeed,
		AverageHR:          w.AverageHR,
		MaxHR:              w.MaxHR,
		AverageCadence:     w.AverageCadence,
		ElevationGain:      w.ElevationGain,
		AveragePower:       w.AveragePower,
		MaxPower:           w.MaxPower,
		AerobicEffect:      w.AerobicEffect,
		AnaerobicEffect:    w.AnaerobicEffect,
		BeginStamina:       w.BeginStamina,
		EndStamina:         w.EndStamina,
		AverageTemperature: w.AverageTemperature,
		Calories:           w.Calories,
	}
	for _, layout := range startTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, w.StartTimeLocal, time.Local); err == nil {
			act.StartTime = parsed
			break
		}
	}
	return act
}
