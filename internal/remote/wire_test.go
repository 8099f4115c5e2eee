// File path: internal/remote/wire_test.go
package remote

import (
	"encoding/json"
	"testing"
)

func TestWireActivityDecodesNumericAndStringIDs(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"numeric id", `{"activityId": 12345678901, "activityName": "Run"}`, "12345678901"},
		{"string id", `{"activityId": "12345678901", "activityName": "Run"}`, "12345678901"},
		{"float id", `{"activityId": 100.0, "activityName": "Run"}`, "100"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var wire wireActivity
			if err := json.Unmarshal([]byte(tc.body), &wire); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			act := wire.toActivity()
			if act.ID != tc.want {
				t.Fatalf("id = %q, want %q", act.ID, tc.want)
			}
		})
	}
}

func TestWireActivityDecodesMetricsAndStartTime(t *testing.T) {
	body := `{
                "activityId": 100,
                "activityName": "Morning Run",
                "activityType": {"typeKey": "running"},
                "startTimeLocal": "2024-05-10 07:30:00",
                "averageSpeed": 3.0,
                "averageHR": 150
        }`
	var wire wireActivity
	if err := json.Unmarshal([]byte(body), &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	act := wire.toActivity()
	if act.Type != "running" {
		t.Fatalf("type = %q", act.Type)
	}
	if act.StartTime.IsZero() {
		t.Fatalf("start time not parsed")
	}
	if act.AverageSpeed == nil || *act.AverageSpeed != 3.0 {
		t.Fatalf("average speed not decoded: %v", act.AverageSpeed)
	}
	if act.MaxHR != nil {
		t.Fatalf("absent metric should stay nil")
	}
}
