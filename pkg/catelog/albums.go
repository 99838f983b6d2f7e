package catelog

type Album struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type ListAlbumsRes struct {
	Albums []Album `json:"albums"`
}

type GetAlbumReq struct {
	AlbumName string
}

type AlbumPhotosRes struct {
	Album  *Album  `json:"album"`
	Photos []Photo `json:"photos"`
}
