package itinerary

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canThoReply = "Dưới đây là lịch trình 3 ngày ở Cần Thơ cho bạn!\n" +
	"```json\n" +
	`{"route": {"day1": [{"name":"Chùa Dơi","latitude":9.602521,"longitude":105.968685,"time":"06:00"}]}}` +
	"\n```"

func TestParseRoute_FencedBlock(t *testing.T) {
	display, route, err := ParseRoute(canThoReply)
	require.NoError(t, err)

	assert.Equal(t, "Dưới đây là lịch trình 3 ngày ở Cần Thơ cho bạn!", display)
	require.Len(t, route, 1)
	assert.Equal(t, []Stop{{
		Name:      "Chùa Dơi",
		Latitude:  9.602521,
		Longitude: 105.968685,
		Time:      "06:00",
	}}, route["day1"])
	assert.Equal(t, "day1", route.FirstDay())
}

func TestParseRoute_ProseAfterFence(t *testing.T) {
	text := "Mở đầu\n```json\n{\"route\": {\"day1\": []}}\n```\nKết thúc"
	display, route, err := ParseRoute(text)
	require.NoError(t, err)
	assert.Equal(t, "Mở đầu\n\nKết thúc", display)
	assert.True(t, route.Has("day1"))
}

func TestParseRoute_NoJSON(t *testing.T) {
	text := "  Xin chào! Bạn muốn đi đâu?  "
	display, route, err := ParseRoute(text)

	assert.Equal(t, text, display)
	assert.Nil(t, route)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoJSON))

	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestParseRoute_OuterBracesFallback(t *testing.T) {
	text := `Lịch trình: {"route": {"day1": [{"name": "Bến Ninh Kiều", "latitude": 10.0341, "longitude": 105.7882, "time": "19:00", "description": "Dạo bến {đêm}"}]}} Chúc vui!`
	display, route, err := ParseRoute(text)
	require.NoError(t, err)

	assert.Equal(t, "Lịch trình:  Chúc vui!", display)
	require.Len(t, route["day1"], 1)
	assert.Equal(t, "Dạo bến {đêm}", route["day1"][0].Description)
}

func TestParseRoute_UnrelatedBracesAround(t *testing.T) {
	text := `Gợi ý {không phải JSON} rồi đây: {"route": {"day1": [], "day2": [{"name": "Chợ nổi Cái Răng", "latitude": 10.0, "longitude": 105.7, "time": "05:30"}]}}`
	display, route, err := ParseRoute(text)
	require.NoError(t, err)

	assert.Equal(t, "Gợi ý {không phải JSON} rồi đây:", display)
	assert.Equal(t, []string{"day1", "day2"}, route.Days())
	assert.Equal(t, "Chợ nổi Cái Răng", route["day2"][0].Name)
}

func TestParseRoute_FencedWithoutRouteFallsBack(t *testing.T) {
	text := "```json\n{\"note\": 1}\n```\n{\"route\": {\"day1\": []}}"
	_, route, err := ParseRoute(text)
	require.NoError(t, err)
	assert.True(t, route.Has("day1"))
}

func TestParseRoute_MissingRoute(t *testing.T) {
	text := `Kết quả: {"days": 3}`
	display, route, err := ParseRoute(text)
	assert.Equal(t, text, display)
	assert.Nil(t, route)
	assert.True(t, errors.Is(err, ErrNoRoute))
}

func TestParseRoute_MalformedRoute(t *testing.T) {
	text := `{"route": ["day1", "day2"]}`
	display, route, err := ParseRoute(text)
	assert.Equal(t, text, display)
	assert.Nil(t, route)
	assert.True(t, errors.Is(err, ErrMalformedRoute))
}

func TestParseRoute_BrokenJSON(t *testing.T) {
	text := "```json\n{\"route\": {\"day1\": [\n```"
	display, route, err := ParseRoute(text)
	assert.Equal(t, text, display)
	assert.Nil(t, route)
	assert.Error(t, err)
}

func TestParseRoute_EmptyRouteBecomesDefault(t *testing.T) {
	_, route, err := ParseRoute(`{"route": {}}`)
	require.NoError(t, err)
	assert.Equal(t, DefaultRoute(), route)
}

func TestParseRoute_StringCoordinates(t *testing.T) {
	_, route, err := ParseRoute(`{"route": {"day1": [{"name": "Nhà cổ Bình Thủy", "latitude": "10.0724", "longitude": " 105.7447 ", "time": "09:00"}]}}`)
	require.NoError(t, err)
	assert.InDelta(t, 10.0724, route["day1"][0].Latitude, 1e-9)
	assert.InDelta(t, 105.7447, route["day1"][0].Longitude, 1e-9)
}

func TestParseRoute_NullDayBecomesEmpty(t *testing.T) {
	_, route, err := ParseRoute(`{"route": {"day1": null}}`)
	require.NoError(t, err)
	assert.NotNil(t, route["day1"])
	assert.Empty(t, route["day1"])
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "Dưới đây là lịch trình 3 ngày ở Cần Thơ cho bạn!", Display(canThoReply))
	assert.Equal(t, "plain", Display("plain"))
}

func TestParseRoute_UnreadableCoordinateKeepsRoute(t *testing.T) {
	text := "Lịch trình\n```json\n" +
		`{"route": {"day1": [{"name": "A", "latitude": "N/A", "longitude": 105.7, "time": "06:00"}, {"name": "B", "latitude": 10.1, "longitude": 105.8, "time": "08:00"}]}}` +
		"\n```"
	display, route, err := ParseRoute(text)
	require.NoError(t, err)

	assert.Equal(t, "Lịch trình", display)
	require.Len(t, route["day1"], 2)
	assert.Equal(t, Stop{Name: "A", Longitude: 105.7, Time: "06:00"}, route["day1"][0])
	assert.Equal(t, "B", route["day1"][1].Name)
}

func TestParseRoute_NonStringTimeIsKept(t *testing.T) {
	text := "```json\n" + `{"route": {"day1": [{"name": "Chùa Dơi", "latitude": 9.6, "longitude": 105.9, "time": 6}]}}` + "\n```"
	display, route, err := ParseRoute(text)
	require.NoError(t, err)

	assert.Empty(t, display)
	require.Len(t, route["day1"], 1)
	assert.Equal(t, "6", route["day1"][0].Time)
}

func TestParseRoute_SkipsOnlyUndecodableStops(t *testing.T) {
	_, route, err := ParseRoute(`{"route": {"day1": ["Chợ nổi", {"name": "Cái Răng", "latitude": 10.0, "longitude": 105.7}], "day2": "free day"}}`)
	require.NoError(t, err)

	require.Len(t, route["day1"], 1)
	assert.Equal(t, "Cái Răng", route["day1"][0].Name)
	assert.NotNil(t, route["day2"])
	assert.Empty(t, route["day2"])
}
