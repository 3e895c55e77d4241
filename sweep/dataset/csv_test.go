package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "toy.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFromCSV_LoadsAndSplits(t *testing.T) {
	path := writeCSV(t, "income,employed,label\n1.5,1,1\n0.5,0,0\n2.5,1,1\n0.2,0,0\n3.0,1,1\n")

	ds, err := FromCSV("toy", path, "label", []string{"employed"}, 42)
	require.NoError(t, err)

	assert.Len(t, ds.XTrain, 4)
	assert.Len(t, ds.XTest, 1)
	require.NotNil(t, ds.Schema)
	assert.Equal(t, []string{"income", "employed"}, ds.Schema.Names)
	assert.Equal(t, []int{1}, ds.Schema.Categorical)
	assert.Len(t, ds.XTrain[0], 2, "label column must not leak into features")
}

func TestFromCSV_MissingLabelColumn(t *testing.T) {
	path := writeCSV(t, "a,b\n1,2\n")
	_, err := FromCSV("toy", path, "label", nil, 42)
	assert.Error(t, err)
}

func TestFromCSV_NonNumericCell(t *testing.T) {
	path := writeCSV(t, "a,label\nhello,1\n2,0\n")
	_, err := FromCSV("toy", path, "label", nil, 42)
	assert.Error(t, err)
}

func TestFromCSV_MissingFile(t *testing.T) {
	_, err := FromCSV("toy", filepath.Join(t.TempDir(), "absent.csv"), "label", nil, 42)
	assert.Error(t, err)
}

func TestFromCSV_HeaderOnly(t *testing.T) {
	path := writeCSV(t, "a,label\n")
	_, err := FromCSV("toy", path, "label", nil, 42)
	assert.Error(t, err)
}
