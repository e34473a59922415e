package weather

import (
	"hash/fnv"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/extract"
)

// Average daytime temperature by month for central Ukraine.
var monthlyBase = map[time.Month]float64{
	time.January: -5, time.February: -3, time.March: 5, time.April: 12,
	time.May: 18, time.June: 22, time.July: 25, time.August: 24,
	time.September: 18, time.October: 11, time.November: 3, time.December: -2,
}

var seasonalConditions = map[string][]string{
	"winter": {"сніг", "хмарно", "туман", "ясно"},
	"summer": {"сонячно", "хмарно", "дощ", "грозове небо"},
	"spring": {"хмарно", "дощ", "ясно", "туман"},
	"autumn": {"хмарно", "дощ", "ясно", "туман"},
}

func season(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return "winter"
	case time.June, time.July, time.August:
		return "summer"
	case time.March, time.April, time.May:
		return "spring"
	}
	return "autumn"
}

// Synthetic returns a seasonal estimate that depends only on the city and the
// month of now. The same inputs always give the same report.
func Synthetic(city extract.City, now time.Time) Report {
	month := now.Month()
	if city.Lat < 0 {
		// Southern hemisphere seasons are shifted by half a year.
		month = time.Month((int(month)+5)%12 + 1)
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(city.Name))
	_, _ = h.Write([]byte{byte(month)})
	seed := h.Sum32()

	temp := monthlyBase[month] + float64(int(seed%7)-3)
	conds := seasonalConditions[season(month)]
	return Report{
		Location:    city.Name,
		Temperature: temp,
		FeelsLike:   temp - float64(seed%3),
		Description: conds[int(seed/7)%len(conds)],
		Humidity:    55 + int(seed%30),
		WindSpeed:   1 + float64(seed%60)/10,
	}
}
