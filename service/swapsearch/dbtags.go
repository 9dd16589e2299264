package swapsearch

// tags
var (
	//init
	tagInitDB = byte(0x00)

	//process
	tagHeight = byte(0x10)

	//swap
	tagSwap   = byte(0x20)
	tagCaller = byte(0x21)
	tagToken  = byte(0x22)
)
