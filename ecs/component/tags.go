package component

// EnemyTag marks members of the shared enemy collection.
type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]("enemy_tag")

// AnnouncementTag marks particles of a boss arrival burst.
type AnnouncementTag struct{}

var AnnouncementTagComponent = NewComponent[AnnouncementTag]("announcement_tag")
