package modifier

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func amount(n int) *int { return &n }

func TestAggregateUngroupedSum(t *testing.T) {
	result := Aggregate([]Record{
		New(ChannelHitPoints, 5, "", Source{Type: SourceFeat, Name: "Toughness"}),
		New(ChannelHitPoints, 3, "", Source{Type: SourceItem, Name: "Belt"}),
		New(ChannelFortitude, 2, "", Source{}),
	})

	assert.Equal(t, 8, result.Get(ChannelHitPoints))
	assert.Equal(t, 2, result.Get(ChannelFortitude))
	assert.Equal(t, 0, result.Get(ChannelWill))
	assert.Len(t, result.Applied, 3)
	assert.Empty(t, result.Suppressed)
	assert.Empty(t, result.Dropped)
}

func TestAggregateStackingGroupKeepsLargestMagnitude(t *testing.T) {
	result := Aggregate([]Record{
		New(ChannelReflex, 1, "armor", Source{Name: "Padded"}),
		New(ChannelReflex, 4, "armor", Source{Name: "Battle armor"}),
		New(ChannelReflex, 2, "armor", Source{Name: "Vest"}),
		New(ChannelReflex, 1, "", Source{Name: "Dodge"}),
	})

	assert.Equal(t, 5, result.Get(ChannelReflex))
	require.Len(t, result.Suppressed, 2)
	assert.Equal(t, "Padded", result.Suppressed[0].Source.Name)
	assert.Equal(t, "Vest", result.Suppressed[1].Source.Name)
}

func TestAggregateNegativeMagnitudeWins(t *testing.T) {
	result := Aggregate([]Record{
		New(ChannelWill, 3, "morale", Source{Name: "Inspired"}),
		New(ChannelWill, -5, "morale", Source{Name: "Shaken"}),
	})
	assert.Equal(t, -5, result.Get(ChannelWill))
}

func TestAggregateTieKeepsEarliest(t *testing.T) {
	result := Aggregate([]Record{
		New(ChannelAttack, 2, "insight", Source{Name: "first"}),
		New(ChannelAttack, -2, "insight", Source{Name: "second"}),
	})
	assert.Equal(t, 2, result.Get(ChannelAttack))
	require.Len(t, result.Applied, 1)
	assert.Equal(t, "first", result.Applied[0].Source.Name)
}

func TestAggregateGroupsAreScopedPerChannel(t *testing.T) {
	result := Aggregate([]Record{
		New(ChannelFortitude, 2, "class", Source{}),
		New(ChannelReflex, 3, "class", Source{}),
	})
	assert.Equal(t, 2, result.Get(ChannelFortitude))
	assert.Equal(t, 3, result.Get(ChannelReflex))
	assert.Empty(t, result.Suppressed)
}

func TestAggregateDropsMalformedRecords(t *testing.T) {
	result := Aggregate([]Record{
		{Channel: "", Amount: amount(4), Source: Source{Name: "no channel"}},
		{Channel: ChannelHitPoints, Source: Source{Name: "no amount"}},
		{Channel: "   ", Amount: amount(1)},
		New(ChannelHitPoints, 2, "", Source{}),
	})

	assert.Equal(t, 2, result.Get(ChannelHitPoints))
	require.Len(t, result.Dropped, 3)
	assert.Equal(t, 0, result.Dropped[0].Index)
	assert.Equal(t, ReasonMissingChannel, result.Dropped[0].Reason)
	assert.Equal(t, ReasonMissingAmount, result.Dropped[1].Reason)
	assert.Equal(t, ReasonMissingChannel, result.Dropped[2].Reason)
}

func TestAggregateKeepsUnconsumedChannels(t *testing.T) {
	result := Aggregate([]Record{
		New("speed.walk", 2, "", Source{}),
		New(ChannelHitPoints, 0, "", Source{}),
	})
	assert.Equal(t, []Channel{ChannelHitPoints, "speed.walk"}, result.Channels())
	assert.Equal(t, 2, result.Get("speed.walk"))
}

func TestAggregateZeroAmountIsValid(t *testing.T) {
	result := Aggregate([]Record{New(ChannelWill, 0, "", Source{})})
	assert.Empty(t, result.Dropped)
	assert.Len(t, result.Applied, 1)
}

func TestAggregateIsDeterministic(t *testing.T) {
	records := []Record{
		New(ChannelReflex, 3, "deflection", Source{Name: "a"}),
		New(ChannelReflex, 3, "deflection", Source{Name: "b"}),
		New(ChannelHitPoints, 7, "", Source{}),
		{Channel: ChannelWill},
	}
	first := Aggregate(records)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Aggregate(records))
	}
}

func TestAggregateEmpty(t *testing.T) {
	result := Aggregate(nil)
	assert.NotNil(t, result.Net)
	assert.Empty(t, result.Net)
}

func TestRecordDecodingDistinguishesMissingAmount(t *testing.T) {
	var fromYAML []Record
	require.NoError(t, yaml.Unmarshal([]byte("- channel: hp.max\n  amount: 0\n- channel: hp.max\n"), &fromYAML))
	require.Len(t, fromYAML, 2)
	assert.NotNil(t, fromYAML[0].Amount)
	assert.Nil(t, fromYAML[1].Amount)

	var fromJSON []Record
	require.NoError(t, json.Unmarshal([]byte(`[{"channel":"defense.will","amount":2,"stacking_group":"morale","source":{"type":"talent","id":"iron-will"}}]`), &fromJSON))
	require.Len(t, fromJSON, 1)
	assert.Equal(t, 2, fromJSON[0].Value())
	assert.Equal(t, "talent:iron-will", fromJSON[0].Source.String())
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "Toughness", Source{Type: SourceFeat, ID: "toughness", Name: "Toughness"}.String())
	assert.Equal(t, "feat", Source{Type: SourceFeat}.String())
	assert.Equal(t, "unknown", Source{}.String())
}
