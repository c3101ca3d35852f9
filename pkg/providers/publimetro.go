package providers

const (
	publimetroProviderID = "publimetro"
	publimetroBaseURL    = "https://www.publimetro.co/"
)

// PublimetroProfile recognizes Publimetro snapshots. No layout rules exist for it
// yet, so extraction always comes back empty.
// TODO: add card strategies once a Publimetro homepage snapshot is available to model them on.
func PublimetroProfile() Profile {
	return Profile{
		ID:      publimetroProviderID,
		BaseURL: publimetroBaseURL,
	}
}
