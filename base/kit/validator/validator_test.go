package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type assetForm struct {
	UnitName string `validate:"unitname"`
	Manager  string `validate:"omitempty,algoaddr"`
}

func TestVerifyUnitName(t *testing.T) {
	addr := strings.Repeat("A", 58)

	require.NoError(t, Verify(assetForm{UnitName: "GOLD"}))
	require.NoError(t, Verify(assetForm{UnitName: "ABCDEFGH", Manager: addr}))

	require.Error(t, Verify(assetForm{UnitName: ""}))
	require.Error(t, Verify(assetForm{UnitName: "TOOLONGNAME"}))
}

func TestVerifyAlgoAddr(t *testing.T) {
	require.NoError(t, Verify(assetForm{UnitName: "X", Manager: strings.Repeat("B", 58)}))
	require.NoError(t, Verify(assetForm{UnitName: "X"}))

	require.Error(t, Verify(assetForm{UnitName: "X", Manager: "not-an-address"}))
	require.Error(t, Verify(assetForm{UnitName: "X", Manager: strings.Repeat("b", 58)}))
	require.Error(t, Verify(assetForm{UnitName: "X", Manager: strings.Repeat("B", 57)}))
}
