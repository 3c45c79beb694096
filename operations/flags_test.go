package operations

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func TestFlagGroups(t *testing.T) {
	assert := assert.New(t)

	flags := mergeFlags(addPathFlag(), addOutputPath(), roiFlags(), rateFlag(), conditioningFlags(), syntheticFlags())
	flagMap := map[string]cli.Flag{}
	for _, f := range flags {
		flagMap[f.GetName()] = f
	}

	expected := []string{
		joinFlagNames(pathFlagName, "filename", "file", "f"),
		joinFlagNames(outputFlagName, "o"),
		roiStartFlagName,
		roiEndFlagName,
		joinFlagNames(rateFlagName, "fs"),
		filterModeFlagName,
		noDetrendFlagName,
		syntheticFlagName,
		durationFlagName,
	}
	for _, n := range expected {
		_, ok := flagMap[n]
		assert.True(ok, n)
	}
}

func TestLoadRecordingSynthetic(t *testing.T) {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range mergeFlags(addPathFlag(), rateFlag(), syntheticFlags(), channelFlags()) {
		f.Apply(set)
	}
	require.NoError(t, set.Parse([]string{"--synthetic", "--duration", "4", "--rate", "64"}))
	c := cli.NewContext(nil, set, nil)

	rec, err := loadRecording(c)
	require.NoError(t, err)
	assert.Equal(t, 64.0, rec.FS)
	assert.Len(t, rec.PPG, 256)
}

func TestLoadRecordingRequiresInput(t *testing.T) {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range mergeFlags(addPathFlag(), rateFlag(), syntheticFlags(), channelFlags()) {
		f.Apply(set)
	}
	require.NoError(t, set.Parse([]string{}))
	c := cli.NewContext(nil, set, nil)

	_, err := loadRecording(c)
	assert.Error(t, err)

	require.NoError(t, set.Parse([]string{"--path", "/nonexistent/input.csv"}))
	_, err = loadRecording(c)
	assert.Error(t, err)
}
