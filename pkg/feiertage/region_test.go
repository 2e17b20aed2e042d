package feiertage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionTable(t *testing.T) {
	require.Len(t, Regions(), 20)
	codes := map[string]Region{}
	for _, r := range Regions() {
		require.NotEmpty(t, r.Code(), r.String())
		require.NotEmpty(t, r.Name(), r.String())
		prev, dup := codes[r.Code()]
		assert.False(t, dup, "%v and %v share code %s", prev, r, r.Code())
		codes[r.Code()] = r
	}
}

func TestRegionValuesStable(t *testing.T) {
	assert.Equal(t, 0, int(BadenWuerttemberg))
	assert.Equal(t, 3, int(BayernAugsburg))
	assert.Equal(t, 8, int(Hessen))
	assert.Equal(t, 16, int(SachsenKatholisch))
	assert.Equal(t, 19, int(ThueringenKatholisch))
}

func TestParseRegion(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Region
	}{
		{"DE-HE", Hessen},
		{"de-he", Hessen},
		{"Hessen", Hessen},
		{"hessen ", Hessen},
		{"Baden-Württemberg", BadenWuerttemberg},
		{"baden wurttemberg", BadenWuerttemberg},
		{"BADEN-WUERTTEMBERG", BadenWuerttemberg},
		{"BadenWuerttemberg", BadenWuerttemberg},
		{"Thüringen (katholisch)", ThueringenKatholisch},
		{"thueringen_katholisch", ThueringenKatholisch},
		{"DE-TH-PROT", ThueringenProtestantisch},
		{"Bayern (Augsburg)", BayernAugsburg},
		{"de-by-augsburg", BayernAugsburg},
		{"Nordrhein-Westfalen", NordrheinWestfalen},
		{"Mecklenburg-Vorpommern", MecklenburgVorpommern},
		{"SachsenAnhalt", SachsenAnhalt},
		{"Sachsen (protestantisch)", SachsenProtestantisch},
	} {
		got, err := ParseRegion(tc.in)
		if assert.NoError(t, err, tc.in) {
			assert.Equal(t, tc.want, got, tc.in)
		}
	}

	for _, in := range []string{"", "Bayern", "Sachsen", "DE", "Tirol", "---"} {
		_, err := ParseRegion(in)
		assert.ErrorIs(t, err, ErrUnknownRegion, in)
	}
}

func TestParseRegionRoundTrip(t *testing.T) {
	for _, r := range Regions() {
		for _, s := range []string{r.String(), r.Code(), r.Name()} {
			got, err := ParseRegion(s)
			require.NoError(t, err, s)
			assert.Equal(t, r, got, s)
		}
	}
}

func TestRegionJSON(t *testing.T) {
	buf, err := json.Marshal(map[string]Region{"region": SachsenKatholisch})
	require.NoError(t, err)
	assert.JSONEq(t, `{"region":"DE-SN-KATH"}`, string(buf))

	var v struct{ Region Region }
	require.NoError(t, json.Unmarshal([]byte(`{"Region":"Saarland"}`), &v))
	assert.Equal(t, Saarland, v.Region)

	assert.Error(t, json.Unmarshal([]byte(`{"Region":"Elsass"}`), &v))
	assert.False(t, Region(20).Valid())
	assert.Equal(t, "Region(20)", Region(20).Code())
}
