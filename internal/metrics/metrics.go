// Package metrics computes derived health metrics from a user's profile and
// weight history. All functions are pure: the caller passes the profile
// fields and the relevant sample explicitly.
package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "weighttrack/internal/errors"
	"weighttrack/internal/model"
)

// Activity is a named activity level for energy-requirement estimation.
type Activity string

const (
	ActivitySedentary  Activity = "sedentary"
	ActivityLowActive  Activity = "lowActive"
	ActivityActive     Activity = "active"
	ActivityVeryActive Activity = "veryActive"
)

// eerMultipliers maps activity level to the sex-specific EER factor.
var eerMultipliers = map[Activity]struct{ male, female decimal.Decimal }{
	ActivitySedentary:  {decimal.NewFromInt(1), decimal.NewFromInt(1)},
	ActivityLowActive:  {decimal.NewFromFloat(1.11), decimal.NewFromFloat(1.12)},
	ActivityActive:     {decimal.NewFromFloat(1.25), decimal.NewFromFloat(1.27)},
	ActivityVeryActive: {decimal.NewFromFloat(1.48), decimal.NewFromFloat(1.45)},
}

// BMI returns the body mass index for imperial inputs, rounded to one
// decimal place.
func BMI(weightLbs, heightIn int) (float64, error) {
	if weightLbs <= 0 {
		return 0, apperrors.ErrNoWeightSamples
	}
	if heightIn <= 0 {
		return 0, apperrors.ErrInvalidHeight
	}
	raw := float64(weightLbs) / float64(heightIn*heightIn) * 703
	return decimal.NewFromFloat(raw).Round(1).InexactFloat64(), nil
}

// Age returns full years between birthday and now, counting the current year
// only once the birthday has passed.
func Age(birthday, now time.Time) int {
	age := now.Year() - birthday.Year()
	if now.Month() < birthday.Month() ||
		(now.Month() == birthday.Month() && now.Day() < birthday.Day()) {
		age--
	}
	return age
}

// BMR returns the Harris-Benedict basal metabolic rate in kcal for imperial
// inputs, truncated toward zero.
func BMR(gender model.Gender, weightLbs, heightIn, age int) (int, error) {
	if weightLbs <= 0 {
		return 0, apperrors.ErrNoWeightSamples
	}
	if heightIn <= 0 {
		return 0, apperrors.ErrInvalidHeight
	}

	w, h, a := float64(weightLbs), float64(heightIn), float64(age)
	var bmr float64
	if gender == model.GenderMale {
		bmr = 66.47 + 6.24*w + 12.7*h - 6.755*a
	} else {
		bmr = 655.1 + 4.35*w + 4.7*h - 4.7*a
	}
	return int(decimal.NewFromFloat(bmr).IntPart()), nil
}

// EER scales an already-computed BMR by the activity multiplier for the
// given sex, truncated to whole kcal. Sedentary yields the BMR unchanged.
func EER(gender model.Gender, bmr int, activity Activity) (int, error) {
	mult, ok := eerMultipliers[activity]
	if !ok {
		return 0, apperrors.ErrUnknownActivity
	}
	factor := mult.female
	if gender == model.GenderMale {
		factor = mult.male
	}
	return int(decimal.NewFromInt(int64(bmr)).Mul(factor).IntPart()), nil
}
