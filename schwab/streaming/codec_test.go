package streaming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageCodec_Decode_LevelOneEquity(t *testing.T) {
	raw := []byte(`{
		"data": [
			{
				"service": "LEVELONE_EQUITIES",
				"timestamp": 1700000000000,
				"command": "SUBS",
				"content": [
					{"key": "AAPL", "1": 100.0, "2": 100.1, "3": 100.05}
				]
			}
		]
	}`)

	codec := NewMessageCodec(nil)
	responses, messages, err := codec.Decode(raw)
	require.NoError(t, err)
	assert.Empty(t, responses)
	require.Len(t, messages, 1)

	msg := messages[0]
	assert.Equal(t, KindLevelOneEquity, msg.Kind)
	require.NotNil(t, msg.LevelOneEquity)
	assert.Equal(t, "AAPL", msg.LevelOneEquity.Symbol)
	require.NotNil(t, msg.LevelOneEquity.BidPrice)
	assert.Equal(t, 100.0, *msg.LevelOneEquity.BidPrice)
	require.NotNil(t, msg.LevelOneEquity.AskPrice)
	assert.Equal(t, 100.1, *msg.LevelOneEquity.AskPrice)
}

func TestMessageCodec_Decode_LoginResponse(t *testing.T) {
	raw := []byte(`{
		"response": [
			{"service": "ADMIN", "command": "LOGIN", "requestid": "0", "content": {"code": 0, "msg": "success"}}
		]
	}`)

	codec := NewMessageCodec(nil)
	responses, messages, err := codec.Decode(raw)
	require.NoError(t, err)
	assert.Empty(t, messages)
	require.Len(t, responses, 1)
	assert.Equal(t, "ADMIN", responses[0].Service)
	assert.Equal(t, "LOGIN", responses[0].Command)
	assert.Equal(t, 0, responses[0].Content.Code)
}

func TestMessageCodec_Decode_UnknownServiceSkipped(t *testing.T) {
	raw := []byte(`{
		"data": [
			{"service": "CHART_EQUITY", "command": "SUBS", "content": [{"key": "AAPL"}]}
		]
	}`)

	codec := NewMessageCodec(nil)
	responses, messages, err := codec.Decode(raw)
	require.NoError(t, err)
	assert.Empty(t, responses)
	assert.Empty(t, messages)
}

func TestMessageCodec_Decode_MalformedContentItemSkippedNotFatal(t *testing.T) {
	raw := []byte(`{
		"data": [
			{
				"service": "LEVELONE_EQUITIES",
				"command": "SUBS",
				"content": [
					{"key": "AAPL", "1": "not-a-number"},
					{"key": "MSFT", "1": 250.0}
				]
			}
		]
	}`)

	codec := NewMessageCodec(nil)
	_, messages, err := codec.Decode(raw)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "MSFT", messages[0].LevelOneEquity.Symbol)
}

func TestMessageCodec_Decode_MultipleServicesInOneFrame(t *testing.T) {
	raw := []byte(`{
		"data": [
			{"service": "LEVELONE_EQUITIES", "command": "SUBS", "content": [{"key": "AAPL"}]},
			{"service": "LEVELONE_FOREX", "command": "SUBS", "content": [{"key": "EUR/USD"}]}
		]
	}`)

	codec := NewMessageCodec(nil)
	_, messages, err := codec.Decode(raw)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, KindLevelOneEquity, messages[0].Kind)
	assert.Equal(t, KindLevelOneForex, messages[1].Kind)
	assert.Equal(t, "EUR/USD", messages[1].LevelOneForex.Symbol)
}

func TestMessageCodec_Decode_InvalidJSON(t *testing.T) {
	codec := NewMessageCodec(nil)
	_, _, err := codec.Decode([]byte(`not json`))
	assert.Error(t, err)
}
