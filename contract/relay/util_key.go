package relay

var (
	tagRouterAddress    = byte(0x01)
	tagPairTokenA       = byte(0x02)
	tagPairTokenB       = byte(0x03)
	tagPairPathKind     = byte(0x04)
	tagPairPoolSelector = byte(0x05)
)
