package model

// City is the strict output shape for the city catalog. The source rows are
// loosely typed (mostly text columns), so every numeric field is a pointer:
// absent or blank source values become JSON null, never zero.
type City struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
	Metrics     Metrics     `json:"metrics"`
}

type Coordinates struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type Metrics struct {
	Climate        ClimateMetrics       `json:"climate"`
	Cost           CostMetrics          `json:"cost"`
	Infrastructure InfrastructureMetric `json:"infrastructure"`
	QualityOfLife  QualityOfLifeMetrics `json:"qualityOfLife"`
	DigitalNomad   DigitalNomadMetrics  `json:"digitalNomad"`
}

type ClimateMetrics struct {
	AverageTemperature *int     `json:"averageTemperature"`
	Precipitation      *int     `json:"precipitation"`
	Seasons            []string `json:"seasons"`
}

type CostMetrics struct {
	Housing           *int `json:"housing"`
	Food              *int `json:"food"`
	Transportation    *int `json:"transportation"`
	Entertainment     *int `json:"entertainment"`
	CostOfLivingIndex *int `json:"costOfLivingIndex"`
}

type InfrastructureMetric struct {
	AverageWifiSpeed *int `json:"averageWifiSpeed"`
	CoworkingSpaces  *int `json:"coworkingSpaces"`
}

type QualityOfLifeMetrics struct {
	HealthcareIndex *int `json:"healthcareIndex"`
	SafetyIndex     *int `json:"safetyIndex"`
	PollutionIndex  *int `json:"pollutionIndex"`
}

type DigitalNomadMetrics struct {
	CommunitySize    *int    `json:"communitySize"`
	MonthlyMeetups   *int    `json:"monthlyMeetups"`
	VisaRequirements *string `json:"visaRequirements"`
}
