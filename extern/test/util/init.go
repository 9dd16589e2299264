package util

import (
	"math/big"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/key"
	"github.com/meverselabs/swaprelay/contract/relay"
	"github.com/meverselabs/swaprelay/contract/router"
	"github.com/meverselabs/swaprelay/contract/token"
	"github.com/meverselabs/swaprelay/core/types"
)

var (
	ChainID = big.NewInt(1337)
	Version = uint16(0x0001)

	Admin       = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	AdminKey, _ = key.NewMemoryKeyFromString(ChainID, "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	Users       []common.Address
	UserKeys    []key.Key

	// hardhat node default accounts 1..9
	userStrs = [9]string{
		"59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d",
		"5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a",
		"7c852118294e51e653712a81e05800f419141751be58f605c371e15141b007a6",
		"47e179ec197488593b187f80a00eb0da91f1b9d0b13f8733639f19c30a34926a",
		"8b3a350cf5c34c9194ca85829a2df0ec3153be0318b5e2d3348e872092edffba",
		"92db14e403b83dfe3df233f83dfa3a0d7096f21ca9b0d6d6b8d88b2b4ec1564e",
		"4bbbf85ce3377467afe5d46f804f221813b2bb87f24d81f60f1fcdbf7cbf4356",
		"dbda1821b80551c9d65939329250298aa3472ba22feea921c0cf5d620ea67b97",
		"2a871d0798f97d79848a013d4936a73bf4cc922c825d33c1cf7073dff6d409c6",
	}
)

var ClassMap map[string]uint64

func init() {
	err := RemoveTestData()
	if err != nil {
		panic(err)
	}

	ClassMap = map[string]uint64{}
	RegisterContractClass(&token.TokenContract{}, "Token")
	RegisterContractClass(&router.RouterContract{}, "Router")
	RegisterContractClass(&relay.RelayContract{}, "Relay")

	UserKeys = []key.Key{}
	Users = []common.Address{}
	for i := 0; i < len(userStrs); i++ {
		k, err := key.NewMemoryKeyFromString(ChainID, userStrs[i])
		if err != nil {
			panic(err)
		}
		UserKeys = append(UserKeys, k)
		Users = append(Users, k.PublicKey().Address())
	}
}

func RegisterContractClass(cont types.Contract, className string) uint64 {
	ClassID, err := types.RegisterContractType(cont)
	if err != nil {
		panic(err)
	}
	ClassMap[className] = ClassID
	return ClassID
}
