package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship/internal/model"
)

func intPtr(v int) *int { return &v }

func TestCellRequestTarget(t *testing.T) {
	tests := []struct {
		name     string
		req      CellRequest
		expected model.Index
		wantErr  error
	}{
		{name: "index", req: CellRequest{Index: intPtr(42)}, expected: 42},
		{name: "coordinates", req: CellRequest{X: intPtr(3), Y: intPtr(7)}, expected: 73},
		{name: "index out of range", req: CellRequest{Index: intPtr(100)}, wantErr: model.ErrInvalidIndex},
		{name: "coordinates out of range", req: CellRequest{X: intPtr(10), Y: intPtr(0)}, wantErr: model.ErrInvalidIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := tt.req.Target()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, idx)
		})
	}
}

func TestCellRequestTargetMalformed(t *testing.T) {
	_, err := CellRequest{}.Target()
	assert.Error(t, err)

	_, err = CellRequest{X: intPtr(1)}.Target()
	assert.Error(t, err)

	_, err = CellRequest{Index: intPtr(1), X: intPtr(1), Y: intPtr(1)}.Target()
	assert.Error(t, err)
}
