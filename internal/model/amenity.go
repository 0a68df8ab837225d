package model

// AmenityRecord is an amenity row managed from the admin screens.  The admin
// listing form keys a listing's amenity flags by NameUz, so renaming an
// amenity's Uzbek label changes which flag it controls.
type AmenityRecord struct {
    ID     int64  // amenities.id
    NameUz string // amenities.name_uz
    NameRu string // amenities.name_ru
    Icon   string // amenities.icon
}
