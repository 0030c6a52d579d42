package domain

import "fmt"

type TimeFrame string

const (
	TimeFrame7Days   TimeFrame = "7days"
	TimeFrame1Month  TimeFrame = "1month"
	TimeFrame3Months TimeFrame = "3months"
	TimeFrame6Months TimeFrame = "6months"
)

// BaselineDays is the canonical forecast horizon every demand figure is normalized to.
const BaselineDays = 180

var timeFrameDays = map[TimeFrame]int{
	TimeFrame7Days:   7,
	TimeFrame1Month:  30,
	TimeFrame3Months: 90,
	TimeFrame6Months: 180,
}

var timeFrameLabels = map[TimeFrame]string{
	TimeFrame7Days:   "7 Days",
	TimeFrame1Month:  "1 Month",
	TimeFrame3Months: "3 Months",
	TimeFrame6Months: "6 Months",
}

// AllTimeFrames returns the supported time frames, shortest first.
func AllTimeFrames() []TimeFrame {
	return []TimeFrame{TimeFrame7Days, TimeFrame1Month, TimeFrame3Months, TimeFrame6Months}
}

// Days maps the time frame to its day count. Unknown values resolve to the baseline.
func (tf TimeFrame) Days() int {
	if d, ok := timeFrameDays[tf]; ok {
		return d
	}
	return BaselineDays
}

// Scale is the factor applied to baseline (six month) demand.
func (tf TimeFrame) Scale() float64 {
	return float64(tf.Days()) / BaselineDays
}

func (tf TimeFrame) Valid() bool {
	_, ok := timeFrameDays[tf]
	return ok
}

func (tf TimeFrame) Label() string {
	if l, ok := timeFrameLabels[tf]; ok {
		return l
	}
	return timeFrameLabels[TimeFrame6Months]
}

func ParseTimeFrame(s string) (TimeFrame, error) {
	tf := TimeFrame(s)
	if !tf.Valid() {
		return TimeFrame6Months, fmt.Errorf("unknown time frame %q", s)
	}
	return tf, nil
}
