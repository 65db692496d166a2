// Package icu is a typed HTTP client for the Intervals.icu API.
package icu

// SportSetting holds sport-specific thresholds for an athlete.
type SportSetting struct {
	ID            int      `json:"id"`
	Type          *string  `json:"type,omitempty"`
	FTP           *int     `json:"ftp,omitempty"`
	FTHR          *int     `json:"fthr,omitempty"`
	PaceThreshold *float64 `json:"pace_threshold,omitempty"`
	SwimThreshold *float64 `json:"swim_threshold,omitempty"`
}

// Athlete is the full profile record.
type Athlete struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         *string        `json:"email,omitempty"`
	Weight        *float64       `json:"weight,omitempty"`
	DOB           *string        `json:"dob,omitempty"`
	Sex           *string        `json:"sex,omitempty"`
	CTL           *float64       `json:"ctl,omitempty"`
	ATL           *float64       `json:"atl,omitempty"`
	TSB           *float64       `json:"tsb,omitempty"`
	RampRate      *float64       `json:"ramp_rate,omitempty"`
	SportSettings []SportSetting `json:"sport_settings,omitempty"`
}

// ActivitySummary is the list representation of an activity.
type ActivitySummary struct {
	ID                 string   `json:"id"`
	StartDateLocal     string   `json:"start_date_local"`
	Name               *string  `json:"name,omitempty"`
	Type               *string  `json:"type,omitempty"`
	Distance           *float64 `json:"distance,omitempty"`
	MovingTime         *int     `json:"moving_time,omitempty"`
	ElapsedTime        *int     `json:"elapsed_time,omitempty"`
	TotalElevationGain *float64 `json:"total_elevation_gain,omitempty"`
	AverageSpeed       *float64 `json:"average_speed,omitempty"`
	AverageHeartrate   *int     `json:"average_heartrate,omitempty"`
	AverageWatts       *int     `json:"average_watts,omitempty"`
	NormalizedPower    *int     `json:"normalized_power,omitempty"`
	AverageCadence     *float64 `json:"average_cadence,omitempty"`
	TrainingLoad       *int     `json:"icu_training_load,omitempty"`
	Intensity          *float64 `json:"icu_intensity,omitempty"`
}

// Activity is the detailed record.
type Activity struct {
	ActivitySummary

	AthleteID            *string  `json:"athlete_id,omitempty"`
	Description          *string  `json:"description,omitempty"`
	Calories             *int     `json:"calories,omitempty"`
	CarbsIngested        *int     `json:"carbs_ingested,omitempty"`
	DeviceName           *string  `json:"device_name,omitempty"`
	MaxHeartrate         *int     `json:"max_heartrate,omitempty"`
	MaxSpeed             *float64 `json:"max_speed,omitempty"`
	MaxWatts             *int     `json:"max_watts,omitempty"`
	MaxCadence           *float64 `json:"max_cadence,omitempty"`
	WeightedAverageWatts *int     `json:"weighted_average_watts,omitempty"`
	VariabilityIndex     *float64 `json:"variability_index,omitempty"`
	EfficiencyFactor     *float64 `json:"efficiency_factor,omitempty"`
	TSS                  *float64 `json:"tss,omitempty"`
	HRSS                 *float64 `json:"hrss,omitempty"`
	TRIMP                *float64 `json:"trimp,omitempty"`
	Feel                 *int     `json:"feel,omitempty"`
	PerceivedExertion    *int     `json:"perceived_exertion,omitempty"`
	Compliance           *float64 `json:"compliance,omitempty"`
	AvgLRBalance         *float64 `json:"avg_lr_balance,omitempty"`
	Commute              *bool    `json:"commute,omitempty"`
	Trainer              *bool    `json:"trainer,omitempty"`
	Indoor               *bool    `json:"indoor,omitempty"`
	Analyzed             *string  `json:"analyzed,omitempty"`
}

// ActivitySearchResult is the shape returned by the name/tag search endpoint.
type ActivitySearchResult struct {
	ID             string   `json:"id"`
	Name           *string  `json:"name,omitempty"`
	StartDateLocal string   `json:"start_date_local"`
	Type           *string  `json:"type,omitempty"`
	Distance       *float64 `json:"distance,omitempty"`
	MovingTime     *int     `json:"moving_time,omitempty"`
}

// Wellness is keyed by calendar date; the API uses camelCase names for
// several fields.
type Wellness struct {
	ID              string   `json:"id"`
	Weight          *float64 `json:"weight,omitempty"`
	RestingHR       *int     `json:"restingHR,omitempty"`
	HRV             *float64 `json:"hrv,omitempty"`
	HRVSDNN         *float64 `json:"hrvSDNN,omitempty"`
	SleepSecs       *int     `json:"sleepSecs,omitempty"`
	SleepQuality    *int     `json:"sleepQuality,omitempty"`
	SleepScore      *float64 `json:"sleepScore,omitempty"`
	AvgSleepingHR   *float64 `json:"avgSleepingHR,omitempty"`
	Fatigue         *int     `json:"fatigue,omitempty"`
	Soreness        *int     `json:"soreness,omitempty"`
	Stress          *int     `json:"stress,omitempty"`
	Mood            *int     `json:"mood,omitempty"`
	Motivation      *int     `json:"motivation,omitempty"`
	Injury          *int     `json:"injury,omitempty"`
	SpO2            *float64 `json:"spo2,omitempty"`
	Respiration     *float64 `json:"respiration,omitempty"`
	Hydration       *int     `json:"hydration,omitempty"`
	HydrationVolume *float64 `json:"hydrationVolume,omitempty"`
	KcalConsumed    *int     `json:"kcalConsumed,omitempty"`
	MenstrualPhase  *string  `json:"menstrualPhase,omitempty"`
	Systolic        *int     `json:"systolic,omitempty"`
	Diastolic       *int     `json:"diastolic,omitempty"`
	BloodGlucose    *float64 `json:"bloodGlucose,omitempty"`
	Lactate         *float64 `json:"lactate,omitempty"`
	BodyFat         *float64 `json:"bodyFat,omitempty"`
	Readiness       *float64 `json:"readiness,omitempty"`
	BaevskySI       *float64 `json:"baevskySI,omitempty"`
	Steps           *int     `json:"steps,omitempty"`
	Comments        *string  `json:"comments,omitempty"`
	CTL             *float64 `json:"ctl,omitempty"`
	ATL             *float64 `json:"atl,omitempty"`
	TSB             *float64 `json:"tsb,omitempty"`
	CTLLoad         *float64 `json:"ctlLoad,omitempty"`
	ATLLoad         *float64 `json:"atlLoad,omitempty"`
	RampRate        *float64 `json:"rampRate,omitempty"`
	Updated         *string  `json:"updated,omitempty"`
}

// Event is a calendar entry: a planned workout, note, race or goal.
type Event struct {
	ID                int      `json:"id"`
	StartDateLocal    string   `json:"start_date_local"`
	Category          *string  `json:"category,omitempty"`
	Name              *string  `json:"name,omitempty"`
	Description       *string  `json:"description,omitempty"`
	Type              *string  `json:"type,omitempty"`
	Distance          *float64 `json:"distance,omitempty"`
	DistanceTarget    *float64 `json:"distance_target,omitempty"`
	MovingTime        *int     `json:"moving_time,omitempty"`
	TrainingLoad      *int     `json:"icu_training_load,omitempty"`
	Intensity         *float64 `json:"icu_intensity,omitempty"`
	ATL               *float64 `json:"icu_atl,omitempty"`
	CTL               *float64 `json:"icu_ctl,omitempty"`
	Joules            *int     `json:"joules,omitempty"`
	JoulesAboveFTP    *int     `json:"joules_above_ftp,omitempty"`
	Color             *string  `json:"color,omitempty"`
	HideFromAthlete   *bool    `json:"hide_from_athlete,omitempty"`
	AthleteCannotEdit *bool    `json:"athlete_cannot_edit,omitempty"`
	ExternalID        *string  `json:"external_id,omitempty"`
	CreatedByID       *string  `json:"created_by_id,omitempty"`
}

// Workout is a library workout belonging to one folder.
type Workout struct {
	ID             int      `json:"id"`
	AthleteID      *string  `json:"athlete_id,omitempty"`
	Name           *string  `json:"name,omitempty"`
	Description    *string  `json:"description,omitempty"`
	FolderID       *int     `json:"folder_id,omitempty"`
	Day            *int     `json:"day,omitempty"`
	MovingTime     *int     `json:"moving_time,omitempty"`
	Distance       *float64 `json:"distance,omitempty"`
	TrainingLoad   *int     `json:"icu_training_load,omitempty"`
	Intensity      *float64 `json:"icu_intensity,omitempty"`
	Joules         *int     `json:"joules,omitempty"`
	JoulesAboveFTP *int     `json:"joules_above_ftp,omitempty"`
	Indoor         *bool    `json:"indoor,omitempty"`
	Color          *string  `json:"color,omitempty"`
	Type           *string  `json:"type,omitempty"`
}

// Folder is a workout folder, or a training plan when DurationWeeks is set.
type Folder struct {
	ID              int       `json:"id"`
	AthleteID       *string   `json:"athlete_id,omitempty"`
	Type            *string   `json:"type,omitempty"`
	Name            *string   `json:"name,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Children        []Workout `json:"children,omitempty"`
	Visibility      *string   `json:"visibility,omitempty"`
	NumWorkouts     *int      `json:"num_workouts,omitempty"`
	StartDateLocal  *string   `json:"start_date_local,omitempty"`
	DurationWeeks   *int      `json:"duration_weeks,omitempty"`
	HoursPerWeekMin *int      `json:"hours_per_week_min,omitempty"`
	HoursPerWeekMax *int      `json:"hours_per_week_max,omitempty"`
}

// CurvePoint is one best-effort sample on a power, HR or pace curve.
type CurvePoint struct {
	Secs          int      `json:"secs"`
	Watts         *int     `json:"watts,omitempty"`
	BPM           *int     `json:"bpm,omitempty"`
	Pace          *float64 `json:"pace,omitempty"`
	SrcActivityID *string  `json:"src_activity_id,omitempty"`
	Date          *string  `json:"date,omitempty"`
}

// Curve holds the points of one performance curve.
type Curve struct {
	Name      *string      `json:"name,omitempty"`
	Type      *string      `json:"type,omitempty"`
	AthleteID *string      `json:"athlete_id,omitempty"`
	Data      []CurvePoint `json:"data"`
}

// Interval is one structured segment of an activity.
type Interval struct {
	ID               *int     `json:"id,omitempty"`
	Type             *string  `json:"type,omitempty"`
	Start            *int     `json:"start,omitempty"`
	End              *int     `json:"end,omitempty"`
	Duration         *int     `json:"duration,omitempty"`
	Distance         *float64 `json:"distance,omitempty"`
	AverageWatts     *int     `json:"average_watts,omitempty"`
	NormalizedPower  *int     `json:"normalized_power,omitempty"`
	AverageHeartrate *int     `json:"average_heartrate,omitempty"`
	MaxHeartrate     *int     `json:"max_heartrate,omitempty"`
	AverageCadence   *float64 `json:"average_cadence,omitempty"`
	AverageSpeed     *float64 `json:"average_speed,omitempty"`
	Target           *string  `json:"target,omitempty"`
	TargetMin        *float64 `json:"target_min,omitempty"`
	TargetMax        *float64 `json:"target_max,omitempty"`
}

// Streams holds per-second time-series data for an activity. Samples may
// be null where the device dropped out.
type Streams struct {
	Watts          []*int      `json:"watts,omitempty"`
	Heartrate      []*int      `json:"heartrate,omitempty"`
	Cadence        []*int      `json:"cadence,omitempty"`
	VelocitySmooth []*float64  `json:"velocity_smooth,omitempty"`
	Altitude       []*float64  `json:"altitude,omitempty"`
	Distance       []*float64  `json:"distance,omitempty"`
	Time           []*int      `json:"time,omitempty"`
	LatLng         [][]float64 `json:"latlng,omitempty"`
	Temp           []*int      `json:"temp,omitempty"`
	Moving         []*bool     `json:"moving,omitempty"`
	GradeSmooth    []*float64  `json:"grade_smooth,omitempty"`
}

// BestEffort is a peak performance over one duration within an activity.
type BestEffort struct {
	Name             *string  `json:"name,omitempty"`
	ElapsedTime      *int     `json:"elapsed_time,omitempty"`
	MovingTime       *int     `json:"moving_time,omitempty"`
	StartIndex       *int     `json:"start_index,omitempty"`
	EndIndex         *int     `json:"end_index,omitempty"`
	Distance         *float64 `json:"distance,omitempty"`
	AverageWatts     *int     `json:"average_watts,omitempty"`
	NormalizedPower  *int     `json:"normalized_power,omitempty"`
	AverageHeartrate *int     `json:"average_heartrate,omitempty"`
	AverageCadence   *float64 `json:"average_cadence,omitempty"`
	AverageSpeed     *float64 `json:"average_speed,omitempty"`
}

// GearReminder is a maintenance reminder attached to a gear item.
type GearReminder struct {
	ID            int      `json:"id"`
	Text          *string  `json:"text,omitempty"`
	DistanceAlert *float64 `json:"distance_alert,omitempty"`
	TimeAlert     *int     `json:"time_alert,omitempty"`
	DueDistance   *float64 `json:"due_distance,omitempty"`
	DueTime       *int     `json:"due_time,omitempty"`
	IsDue         *bool    `json:"is_due,omitempty"`
	SnoozedUntil  *string  `json:"snoozed_until,omitempty"`
}

// Gear is an equipment item with lifetime usage totals.
type Gear struct {
	ID            string         `json:"id"`
	AthleteID     *string        `json:"athlete_id,omitempty"`
	Name          *string        `json:"name,omitempty"`
	Brand         *string        `json:"brand,omitempty"`
	Model         *string        `json:"model,omitempty"`
	GearType      *string        `json:"gear_type,omitempty"`
	Active        *bool          `json:"active,omitempty"`
	Primary       *bool          `json:"primary,omitempty"`
	Distance      *float64       `json:"distance,omitempty"`
	MovingTime    *int           `json:"moving_time,omitempty"`
	ActivityCount *int           `json:"activity_count,omitempty"`
	Reminders     []GearReminder `json:"reminders,omitempty"`
}

// HistogramBin is one bucket of a distribution histogram.
type HistogramBin struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
	Secs  *int    `json:"secs,omitempty"`
}

// Histogram is a value distribution for one activity metric.
type Histogram struct {
	Bins       []HistogramBin `json:"bins"`
	TotalCount *int           `json:"total_count,omitempty"`
	TotalSecs  *int           `json:"total_secs,omitempty"`
}
