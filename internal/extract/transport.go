package extract

// Transport is the travel mode for navigation.
type Transport string

const (
	Car     Transport = "car"
	Transit Transport = "transit"
	Walking Transport = "walking"
)

// Mode is the human-readable Ukrainian label.
func (t Transport) Mode() string {
	switch t {
	case Transit:
		return "громадський транспорт"
	case Walking:
		return "пішки"
	}
	return "автомобіль"
}

var (
	walkingWords = []string{"пішки", "пешком", "дійти", "піти", "йти", "walk", "walking", "on foot"}
	transitWords = []string{"автобус", "автобусом", "метро", "маршрутка", "маршруткою", "трамвай", "трамваєм",
		"тролейбус", "тролейбусом", "громадський", "громадським", "електричка", "bus", "subway", "metro", "transit", "train", "tram"}
)

// ExtractTransport defaults to Car. Walking markers win over transit ones.
func ExtractTransport(text string) Transport {
	norm := Normalize(text)
	for _, w := range walkingWords {
		if ContainsWord(norm, w) {
			return Walking
		}
	}
	for _, w := range transitWords {
		if ContainsWord(norm, w) {
			return Transit
		}
	}
	return Car
}
