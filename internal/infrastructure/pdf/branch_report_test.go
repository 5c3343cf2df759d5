package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retailflow-api/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":        "0,00",
		"999":      "999,00",
		"25000":    "25.000,00",
		"1000000":  "1.000.000,00",
		"-1234.5":  "-1.234,50",
		"12.345":   "12,35",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestRenderComparison(t *testing.T) {
	cmp := &dto.BranchComparisonResponse{
		Branch1:         dto.BranchSummary{ID: "1", Name: "Norte", Location: "Av. 1", TotalSales: decimal.NewFromInt(150000), ProductCount: 4, EmployeeCount: 2},
		Branch2:         dto.BranchSummary{ID: "2", Name: "Sur", Location: "Calle 9", TotalSales: decimal.NewFromInt(50000), ProductCount: 1},
		SalesDifference: decimal.NewFromInt(100000),
	}

	out, err := NewBranchReport("retailflow-api").RenderComparison(context.Background(), cmp)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
