package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeam_IsLedBy(t *testing.T) {
	lead := "lead-1"
	assert.True(t, Team{ID: "t", LeadID: &lead}.IsLedBy("lead-1"))
	assert.False(t, Team{ID: "t", LeadID: &lead}.IsLedBy("lead-2"))
	assert.False(t, Team{ID: "t"}.IsLedBy("lead-1"))
}
