package entity

// AssetReference identifies an uploaded binary asset. Only URL is persisted on
// the user record; PublicID exists so a saga can delete the asset on rollback
// and must be held in memory for the duration of that saga.
type AssetReference struct {
	URL      string
	PublicID string
}
