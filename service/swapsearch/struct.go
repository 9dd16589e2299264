package swapsearch

import (
	"sync"

	"github.com/bluele/gcache"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/tidwall/btree"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/service/apiserver"
)

type SwapSearch struct {
	sync.Mutex
	db        *leveldb.DB
	api       *apiserver.APIServer
	relay     common.Address
	pairIn    common.Address
	pairOut   common.Address
	recent    *btree.BTree
	recentSeq uint64
	pageCache gcache.Cache
}

type SwapLog struct {
	TxID      string
	Caller    string
	TokenIn   string
	TokenOut  string
	AmountIn  string
	AmountOut string
	Method    string
}
