// internal/domain/exercise.go
package domain

import "time"

// ExerciseType classifies a catalog movement.
type ExerciseType string

const (
	TypeStrength    ExerciseType = "strength"
	TypeCardio      ExerciseType = "cardio"
	TypeFlexibility ExerciseType = "flexibility"
	TypeBalance     ExerciseType = "balance"
	TypePlyometric  ExerciseType = "plyometric"
	TypeOther       ExerciseType = "other"
)

// ExerciseTypes lists every ExerciseType in schema order.
var ExerciseTypes = []ExerciseType{
	TypeStrength, TypeCardio, TypeFlexibility, TypeBalance, TypePlyometric, TypeOther,
}

func (t ExerciseType) Valid() bool {
	for _, v := range ExerciseTypes {
		if t == v {
			return true
		}
	}
	return false
}

// MuscleGroup is the primary or secondary target of an exercise.
type MuscleGroup string

const (
	MuscleChest      MuscleGroup = "chest"
	MuscleBack       MuscleGroup = "back"
	MuscleShoulders  MuscleGroup = "shoulders"
	MuscleBiceps     MuscleGroup = "biceps"
	MuscleTriceps    MuscleGroup = "triceps"
	MuscleForearms   MuscleGroup = "forearms"
	MuscleAbs        MuscleGroup = "abs"
	MuscleObliques   MuscleGroup = "obliques"
	MuscleQuads      MuscleGroup = "quads"
	MuscleHamstrings MuscleGroup = "hamstrings"
	MuscleGlutes     MuscleGroup = "glutes"
	MuscleCalves     MuscleGroup = "calves"
	MuscleFullBody   MuscleGroup = "full_body"
	MuscleCardio     MuscleGroup = "cardio"
)

var MuscleGroups = []MuscleGroup{
	MuscleChest, MuscleBack, MuscleShoulders, MuscleBiceps, MuscleTriceps, MuscleForearms,
	MuscleAbs, MuscleObliques, MuscleQuads, MuscleHamstrings, MuscleGlutes, MuscleCalves,
	MuscleFullBody, MuscleCardio,
}

func (m MuscleGroup) Valid() bool {
	for _, v := range MuscleGroups {
		if m == v {
			return true
		}
	}
	return false
}

// Equipment needed to perform an exercise.
type Equipment string

const (
	EquipmentBarbell        Equipment = "barbell"
	EquipmentDumbbell       Equipment = "dumbbell"
	EquipmentKettlebell     Equipment = "kettlebell"
	EquipmentMachine        Equipment = "machine"
	EquipmentCable          Equipment = "cable"
	EquipmentBodyweight     Equipment = "bodyweight"
	EquipmentResistanceBand Equipment = "resistance_band"
	EquipmentMedicineBall   Equipment = "medicine_ball"
	EquipmentBox            Equipment = "box"
	EquipmentRower          Equipment = "rower"
	EquipmentBike           Equipment = "bike"
	EquipmentTreadmill      Equipment = "treadmill"
	EquipmentOther          Equipment = "other"
	EquipmentNone           Equipment = "none"
)

var EquipmentKinds = []Equipment{
	EquipmentBarbell, EquipmentDumbbell, EquipmentKettlebell, EquipmentMachine, EquipmentCable,
	EquipmentBodyweight, EquipmentResistanceBand, EquipmentMedicineBall, EquipmentBox,
	EquipmentRower, EquipmentBike, EquipmentTreadmill, EquipmentOther, EquipmentNone,
}

func (e Equipment) Valid() bool {
	for _, v := range EquipmentKinds {
		if e == v {
			return true
		}
	}
	return false
}

// Exercise represents a single movement in the exercise library.
// Global entries have IsCustom false; custom entries carry the creating user in CreatedBy.
type Exercise struct {
	ID                   int64        `json:"id"`
	Name                 string       `json:"name"`
	Description          *string      `json:"description,omitempty"`
	Type                 ExerciseType `json:"type"`
	PrimaryMuscleGroup   MuscleGroup  `json:"primaryMuscleGroup"`
	SecondaryMuscleGroup *MuscleGroup `json:"secondaryMuscleGroup,omitempty"`
	Equipment            Equipment    `json:"equipment"`
	Instructions         *string      `json:"instructions,omitempty"`
	VideoURL             *string      `json:"videoUrl,omitempty"`
	IsCustom             bool         `json:"isCustom"`
	CreatedBy            *string      `json:"createdBy,omitempty"` // user ID for custom exercises
	CreatedAt            time.Time    `json:"createdAt"`
	UpdatedAt            time.Time    `json:"updatedAt"`
}

// ApplyDefaults fills the schema defaults for type and equipment.
func (e *Exercise) ApplyDefaults() {
	if e.Type == "" {
		e.Type = TypeStrength
	}
	if e.Equipment == "" {
		e.Equipment = EquipmentBodyweight
	}
}
