package flowshop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstance(t *testing.T) {
	machines := []int{1, 2}
	pt := [][][]int{
		{{4}, {7}},
		{{1, 2}, {3, 0}},
	}
	due := []int{10, 20}

	inst, err := NewInstance(2, 2, machines, pt, due)
	require.NoError(t, err)

	assert.Equal(t, 2, inst.Jobs())
	assert.Equal(t, 2, inst.Stages())
	assert.Equal(t, 1, inst.Machines(0))
	assert.Equal(t, 2, inst.Machines(1))
	assert.Equal(t, 2, inst.MaxMachines())
	assert.Equal(t, 3, inst.Time(1, 1, 0))
	assert.Equal(t, 20, inst.DueDate(1))

	// inputs are copied
	machines[1] = 9
	pt[1][1][0] = 99
	due[0] = 0
	assert.Equal(t, 2, inst.Machines(1))
	assert.Equal(t, 3, inst.Time(1, 1, 0))
	assert.Equal(t, 10, inst.DueDate(0))

	// accessors hand out copies
	inst.MachinesPerStage()[0] = 5
	inst.DueDates()[0] = 5
	assert.Equal(t, []int{1, 2}, inst.MachinesPerStage())
	assert.Equal(t, []int{10, 20}, inst.DueDates())
}

func TestNewInstance_Errors(t *testing.T) {
	ok := [][][]int{{{1}, {1}}}

	cases := []struct {
		name       string
		jobs       int
		stages     int
		machines   []int
		pt         [][][]int
		due        []int
		incomplete bool
	}{
		{name: "no jobs", jobs: 0, stages: 1, machines: []int{1}, pt: ok, due: nil},
		{name: "no stages", jobs: 2, stages: 0, machines: nil, pt: nil, due: []int{0, 0}},
		{name: "machines length", jobs: 2, stages: 1, machines: []int{1, 1}, pt: ok, due: []int{0, 0}},
		{name: "zero machines", jobs: 2, stages: 1, machines: []int{0}, pt: [][][]int{{{}, {}}}, due: []int{0, 0}},
		{name: "negative duration", jobs: 2, stages: 1, machines: []int{1}, pt: [][][]int{{{1}, {-1}}}, due: []int{0, 0}},
		{name: "negative due date", jobs: 2, stages: 1, machines: []int{1}, pt: ok, due: []int{0, -3}},
		{name: "due dates length", jobs: 2, stages: 1, machines: []int{1}, pt: ok, due: []int{0}},
		{name: "missing stage", jobs: 2, stages: 2, machines: []int{1, 1}, pt: ok, due: []int{0, 0}, incomplete: true},
		{name: "missing job", jobs: 2, stages: 1, machines: []int{1}, pt: [][][]int{{{1}}}, due: []int{0, 0}, incomplete: true},
		{name: "missing machine", jobs: 2, stages: 1, machines: []int{2}, pt: [][][]int{{{1, 2}, {3}}}, due: []int{0, 0}, incomplete: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inst, err := NewInstance(tc.jobs, tc.stages, tc.machines, tc.pt, tc.due)
			require.ErrorIs(t, err, ErrInvalidInstance)
			assert.Nil(t, inst)
			if tc.incomplete {
				assert.ErrorIs(t, err, ErrIncompleteInstance)
			} else {
				assert.NotErrorIs(t, err, ErrIncompleteInstance)
			}
		})
	}
}

func TestInstance_WithDueDates(t *testing.T) {
	inst, err := NewInstance(2, 1, []int{1}, [][][]int{{{5}, {5}}}, UniformDueDates(2, DefaultDueDate))
	require.NoError(t, err)

	other, err := inst.WithDueDates([]int{3, 12})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 12}, other.DueDates())
	assert.Equal(t, []int{100, 100}, inst.DueDates())

	_, err = inst.WithDueDates([]int{1})
	assert.ErrorIs(t, err, ErrInvalidInstance)
}

func TestValidatePermutation(t *testing.T) {
	require.NoError(t, ValidatePermutation([]int{2, 0, 1}, 3))
	require.NoError(t, ValidatePermutation(IdentityPermutation(5), 5))

	assert.ErrorIs(t, ValidatePermutation([]int{0, 0, 1}, 3), ErrMalformedPermutation)
	assert.ErrorIs(t, ValidatePermutation([]int{0, 1}, 3), ErrMalformedPermutation)
	assert.ErrorIs(t, ValidatePermutation([]int{0, 1, 5}, 3), ErrMalformedPermutation)
}

func TestParseObjective(t *testing.T) {
	o, err := ParseObjective("makespan")
	require.NoError(t, err)
	assert.Equal(t, ObjectiveMakespan, o)

	o, err = ParseObjective("tardiness")
	require.NoError(t, err)
	assert.Equal(t, ObjectiveTardiness, o)

	_, err = ParseObjective("flowtime")
	assert.ErrorIs(t, err, ErrUnknownObjective)
}
