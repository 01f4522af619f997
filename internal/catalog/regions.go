package catalog

// District is a named administrative district with its approximate center
// coordinates, used for satellite and weather data extraction.
type District struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationProfile is a resolved (region, district) pair together with
// coordinates and the climate zone tag used for suitability matching.
type LocationProfile struct {
	Region      string      `json:"region"`
	District    string      `json:"district"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	ClimateZone ClimateZone `json:"climate_zone"`
}

type regionEntry struct {
	Name      string
	Zone      ClimateZone
	Districts []District
}

// regions holds the administrative reference table: regions, their climate
// zone and district centers.
var regions = []regionEntry{
	{
		Name: "Tashkent City", Zone: ZoneTashkent,
		Districts: []District{
			{Name: "Chilanzar", Latitude: 41.2833, Longitude: 69.1833},
			{Name: "Yunusabad", Latitude: 41.3667, Longitude: 69.2167},
			{Name: "Mirzo Ulugbek", Latitude: 41.3500, Longitude: 69.2833},
			{Name: "Sergeli", Latitude: 41.2333, Longitude: 69.2000},
			{Name: "Yashnabad", Latitude: 41.2833, Longitude: 69.3500},
		},
	},
	{
		Name: "Tashkent Region", Zone: ZoneTashkent,
		Districts: []District{
			{Name: "Angren", Latitude: 41.0167, Longitude: 70.1333},
			{Name: "Bekabad", Latitude: 40.2167, Longitude: 69.2500},
			{Name: "Chirchiq", Latitude: 41.4667, Longitude: 69.5833},
			{Name: "Chinaz", Latitude: 40.9333, Longitude: 68.7667},
			{Name: "Parkent", Latitude: 41.2833, Longitude: 69.6667},
			{Name: "Yangiyul", Latitude: 41.1167, Longitude: 69.0500},
			{Name: "Zangiota", Latitude: 41.2167, Longitude: 69.0667},
		},
	},
	{
		Name: "Andijan", Zone: ZoneFergana,
		Districts: []District{
			{Name: "Andijan City", Latitude: 40.7833, Longitude: 72.3442},
			{Name: "Asaka", Latitude: 40.6333, Longitude: 72.2333},
			{Name: "Marhamat", Latitude: 40.5167, Longitude: 72.3167},
			{Name: "Shahrikhan", Latitude: 40.7000, Longitude: 72.0500},
			{Name: "Pakhtaabad", Latitude: 40.9167, Longitude: 72.5333},
		},
	},
	{
		Name: "Fergana", Zone: ZoneFergana,
		Districts: []District{
			{Name: "Fergana City", Latitude: 40.3842, Longitude: 71.7889},
			{Name: "Marg'ilon", Latitude: 40.4667, Longitude: 71.7167},
			{Name: "Qoqon", Latitude: 40.5333, Longitude: 70.9333},
			{Name: "Rishton", Latitude: 40.3667, Longitude: 71.2833},
			{Name: "Oltiariq", Latitude: 40.4333, Longitude: 71.4667},
		},
	},
	{
		Name: "Namangan", Zone: ZoneFergana,
		Districts: []District{
			{Name: "Namangan City", Latitude: 41.0011, Longitude: 71.6725},
			{Name: "Chust", Latitude: 41.0000, Longitude: 71.2333},
			{Name: "Pop", Latitude: 40.8667, Longitude: 71.1000},
			{Name: "Uchqorgon", Latitude: 41.1167, Longitude: 72.0667},
		},
	},
	{
		Name: "Bukhara", Zone: ZoneBukhara,
		Districts: []District{
			{Name: "Bukhara City", Latitude: 39.7747, Longitude: 64.4286},
			{Name: "Gijduvon", Latitude: 40.1000, Longitude: 64.6833},
			{Name: "Kogon", Latitude: 39.7167, Longitude: 64.5500},
			{Name: "Romitan", Latitude: 39.9333, Longitude: 64.3833},
			{Name: "Vobkent", Latitude: 40.0167, Longitude: 64.5167},
		},
	},
	{
		Name: "Navoiy", Zone: ZoneBukhara,
		Districts: []District{
			{Name: "Navoiy City", Latitude: 40.0844, Longitude: 65.3792},
			{Name: "Zarafshan", Latitude: 41.5667, Longitude: 64.2000},
			{Name: "Karmana", Latitude: 40.1333, Longitude: 65.3667},
			{Name: "Nurota", Latitude: 40.5667, Longitude: 65.6833},
		},
	},
	{
		Name: "Karakalpakstan", Zone: ZoneKarakalpakstan,
		Districts: []District{
			{Name: "Nukus", Latitude: 42.4531, Longitude: 59.6103},
			{Name: "Beruniy", Latitude: 41.6917, Longitude: 60.7500},
			{Name: "Chimboy", Latitude: 42.9333, Longitude: 59.7667},
			{Name: "Moynaq", Latitude: 43.7667, Longitude: 59.0333},
			{Name: "Turtkul", Latitude: 41.5500, Longitude: 61.0000},
		},
	},
	{
		Name: "Samarkand", Zone: ZoneSamarkand,
		Districts: []District{
			{Name: "Samarkand City", Latitude: 39.6542, Longitude: 66.9597},
			{Name: "Urgut", Latitude: 39.4000, Longitude: 67.2500},
			{Name: "Kattakurgan", Latitude: 39.9000, Longitude: 66.2667},
			{Name: "Bulungur", Latitude: 39.7667, Longitude: 67.2667},
			{Name: "Jomboy", Latitude: 39.7000, Longitude: 67.1000},
		},
	},
	{
		Name: "Jizzakh", Zone: ZoneSamarkand,
		Districts: []District{
			{Name: "Jizzakh City", Latitude: 40.1158, Longitude: 67.8422},
			{Name: "Gallaorol", Latitude: 40.2167, Longitude: 68.1000},
			{Name: "Zomin", Latitude: 39.9500, Longitude: 68.4000},
			{Name: "Pakhtakor", Latitude: 40.2167, Longitude: 67.7667},
			{Name: "Dostlik", Latitude: 40.5167, Longitude: 67.7833},
		},
	},
	{
		Name: "Kashkadarya", Zone: ZoneSouth,
		Districts: []District{
			{Name: "Qarshi", Latitude: 38.8667, Longitude: 65.8000},
			{Name: "Shahrisabz", Latitude: 39.0500, Longitude: 66.8333},
			{Name: "Kitob", Latitude: 39.1167, Longitude: 66.8833},
			{Name: "Guzar", Latitude: 38.6167, Longitude: 66.2500},
			{Name: "Koson", Latitude: 39.0333, Longitude: 65.5833},
		},
	},
	{
		Name: "Surkhandarya", Zone: ZoneSouth,
		Districts: []District{
			{Name: "Termiz", Latitude: 37.2242, Longitude: 67.2783},
			{Name: "Denov", Latitude: 38.2667, Longitude: 67.9000},
			{Name: "Boysun", Latitude: 38.2000, Longitude: 67.2000},
			{Name: "Sherobod", Latitude: 37.6667, Longitude: 67.0000},
			{Name: "Jarqorgon", Latitude: 37.5000, Longitude: 67.4167},
		},
	},
	{
		Name: "Khorezm", Zone: ZoneKhorezm,
		Districts: []District{
			{Name: "Urganch", Latitude: 41.5500, Longitude: 60.6333},
			{Name: "Khiva", Latitude: 41.3775, Longitude: 60.3619},
			{Name: "Shovot", Latitude: 41.6500, Longitude: 60.3000},
			{Name: "Gurlan", Latitude: 41.8500, Longitude: 60.3833},
			{Name: "Hazorasp", Latitude: 41.3167, Longitude: 61.0667},
		},
	},
	{
		Name: "Sirdaryo", Zone: ZoneSirdaryo,
		Districts: []District{
			{Name: "Guliston", Latitude: 40.4897, Longitude: 68.7842},
			{Name: "Yangiyer", Latitude: 40.2667, Longitude: 68.8167},
			{Name: "Shirin", Latitude: 40.2333, Longitude: 69.1167},
			{Name: "Boyovut", Latitude: 40.1833, Longitude: 69.0167},
			{Name: "Sardoba", Latitude: 40.5167, Longitude: 68.5500},
		},
	},
}
