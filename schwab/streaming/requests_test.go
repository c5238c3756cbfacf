package streaming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelOneEquities_EmptyFieldsExpandsToDenseRange(t *testing.T) {
	req := LevelOneEquities([]string{"AAPL"}, nil, CommandSubs)
	assert.Equal(t, ServiceLevelOneEquities, req.Service)
	assert.Equal(t, CommandSubs, req.Command)
	require := assert.New(t)
	require.Len(req.Fields, int(equityFieldCount))
	require.Equal("0", req.Fields[0])
	require.Equal("51", req.Fields[len(req.Fields)-1])
}

func TestLevelOneEquities_ExplicitFieldsUsedVerbatim(t *testing.T) {
	req := LevelOneEquities([]string{"AAPL"}, []LevelOneEquitiesField{EquityBidPrice, EquityAskPrice}, CommandAdd)
	assert.Equal(t, []string{"1", "2"}, req.Fields)
}

func TestLevelOneOptions_EmptyFieldsExpandsToDenseRange(t *testing.T) {
	req := LevelOneOptions([]string{"AAPL  250919C00232500"}, nil, CommandSubs)
	assert.Len(t, req.Fields, int(optionFieldCount))
	assert.Equal(t, "55", req.Fields[len(req.Fields)-1])
}

func TestLevelOneFutures_EmptyFieldsExpandsToDenseRange(t *testing.T) {
	req := LevelOneFutures([]string{"/ES"}, nil, CommandSubs)
	assert.Len(t, req.Fields, int(futureFieldCount))
	assert.Equal(t, "40", req.Fields[len(req.Fields)-1])
}

func TestLevelOneFuturesOptions_EmptyFieldsExpandsToDenseRange(t *testing.T) {
	req := LevelOneFuturesOptions([]string{"./ESZ25C4500"}, nil, CommandSubs)
	assert.Len(t, req.Fields, int(futureOptionFieldCount))
	assert.Equal(t, "31", req.Fields[len(req.Fields)-1])
}

func TestLevelOneForex_EmptyFieldsExpandsToDenseRange(t *testing.T) {
	req := LevelOneForex([]string{"EUR/USD"}, nil, CommandSubs)
	assert.Len(t, req.Fields, int(forexFieldCount))
	assert.Equal(t, "29", req.Fields[len(req.Fields)-1])
}
