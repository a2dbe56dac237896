package demo

import (
	"testing"
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaff(t *testing.T) {
	staff := Staff()
	require.Len(t, staff, 5)
	assert.Equal(t, "s1", staff[0].ID)
	assert.Equal(t, model.RoleOwner, staff[0].Role)
	assert.Equal(t, model.RoleContractor, staff[4].Role)
}

func TestJobs(t *testing.T) {
	loc := time.FixedZone("GMT", 0)
	day := time.Date(2026, 2, 25, 17, 45, 0, 0, loc)

	jobs := Jobs(day)
	require.Len(t, jobs, 10)

	first := jobs[0]
	assert.Equal(t, "j-001", first.ID)
	assert.Equal(t, time.Date(2026, 2, 25, 8, 30, 0, 0, loc), first.Start)
	assert.Equal(t, time.Date(2026, 2, 25, 10, 0, 0, 0, loc), first.End)
	assert.Equal(t, "Mrs. Patterson", first.Customer())

	for _, j := range jobs {
		assert.NoError(t, model.ValidateJob(j), j.ID)
		assert.NotEqual(t, "s4", j.StaffID)
	}
}
