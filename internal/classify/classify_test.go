package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentify_StandardLabels(t *testing.T) {
	labels := []string{"brodmann area", "brain region", "hemisphere", "x", "y", "z", "t value", "p value"}
	got := Identify(labels)

	assert.Equal(t, []Column{
		ColBA, ColRegion, ColHemisphere, ColX, ColY, ColZ, ColStatistic, ColPValue,
	}, got)
}

func TestIdentify_BareZWithoutXYIsStatistic(t *testing.T) {
	labels := []string{"region", "z"}
	got := Identify(labels)
	assert.Equal(t, ColRegion, got[0])
	assert.Equal(t, ColStatistic, got[1])
}

func TestIdentify_ZAfterYIsCoordinate(t *testing.T) {
	labels := []string{"x", "y", "z"}
	got := Identify(labels)
	assert.Equal(t, []Column{ColX, ColY, ColZ}, got)
}

func TestIdentify_ZNotAfterYIsStatistic(t *testing.T) {
	labels := []string{"x", "region", "z"}
	got := Identify(labels)
	assert.Equal(t, ColStatistic, got[2])
}

func TestIdentify_OrdinateLabelSkipped(t *testing.T) {
	labels := []string{"coordinate system"}
	got := Identify(labels)
	assert.Equal(t, ColNone, got[0])
}

func TestIdentify_UnknownLabelIsNone(t *testing.T) {
	labels := []string{"foobar"}
	got := Identify(labels)
	assert.Equal(t, ColNone, got[0])
}
