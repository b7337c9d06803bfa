package common

const (
	BaseWidth  = 1280
	BaseHeight = 720
	TPS        = 60
)
