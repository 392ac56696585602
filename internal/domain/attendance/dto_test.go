package attendance

import (
	"testing"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCorrectAttendanceRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := CorrectAttendanceRequest{
			ID:       "att-1",
			CheckIn:  strPtr("2024-03-04T08:00:00+07:00"),
			CheckOut: strPtr("2024-03-04T17:00:00+07:00"),
			Status:   strPtr(string(StatusSick)),
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("only id", func(t *testing.T) {
		req := CorrectAttendanceRequest{ID: "att-1"}
		assert.NoError(t, req.Validate())
	})

	t.Run("every field invalid", func(t *testing.T) {
		req := CorrectAttendanceRequest{
			CheckIn:  strPtr("yesterday"),
			CheckOut: strPtr("17:00"),
			Status:   strPtr("ON_VACATION"),
		}

		var verrs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &verrs)
		fields := verrs.ToMap()
		assert.Equal(t, "id is required", fields["id"])
		assert.Equal(t, "check_in must be an ISO8601 timestamp", fields["check_in"])
		assert.Equal(t, "check_out must be an ISO8601 timestamp", fields["check_out"])
		assert.Equal(t, "status must be one of: PRESENT, LATE, ABSENT, SICK, PERMISSION, LEAVE", fields["status"])
	})
}
