package chainfake

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ProxyAdmin proxy types
const (
	typeERC1967    uint8 = 0
	typeChugSplash uint8 = 1
	typeResolved   uint8 = 2
)

// AdminSlot is the EIP-1967 admin slot
var AdminSlot = common.HexToHash("0xb53127684a568b3173ae13b9f8a6016e243e63b6e8ee1178d6a717850b5d6103")

// ResolvedManagerSlot is where a ResolvedDelegateProxy at proxy keeps its address manager
func ResolvedManagerSlot(proxy common.Address) common.Hash {
	return crypto.Keccak256Hash(common.LeftPadBytes(proxy.Bytes(), 32), common.LeftPadBytes([]byte{1}, 32))
}

// Standard returns the controller, proxy and factory contracts of the
// OP-Stack L1 set plus the implementations the default test plan uses
func Standard() []*Definition {
	return []*Definition{
		ProxyAdmin(),
		AddressManager(),
		Proxy(),
		L1ChugSplashProxy(),
		ResolvedDelegateProxy(),
		DisputeGameFactory(),
		Implementation("SystemConfig", nil, []string{"address owner", "uint256 gasLimit"}),
		Implementation("OptimismPortal", nil, []string{"address systemConfig"}),
		Implementation("L1CrossDomainMessenger", nil, []string{"address portal"}),
		Implementation("L1StandardBridge", nil, []string{"address messenger"}),
		Implementation("FaultDisputeGame", []string{"uint32 gameType", "bytes32 absolutePrestate", "uint256 maxGameDepth"}, nil),
	}
}

func addressOf(h common.Hash) common.Address {
	return common.BytesToAddress(h.Bytes())
}

func hashOf(a common.Address) common.Hash {
	return common.BytesToHash(a.Bytes())
}

// ProxyAdmin owns every proxy and routes upgrades by proxy type
func ProxyAdmin() *Definition {
	return &Definition{
		Name: "ProxyAdmin",
		ABI: abiJSON(
			constructor("address owner"),
			view("owner", nil, "address"),
			write("transferOwnership", "address newOwner"),
			view("addressManager", nil, "address"),
			write("setAddressManager", "address _address"),
			view("proxyType", []string{"address"}, "uint8"),
			write("setProxyType", "address _address", "uint8 _type"),
			view("implementationName", []string{"address"}, "string"),
			write("setImplementationName", "address _address", "string _name"),
			view("getProxyImplementation", []string{"address _proxy"}, "address"),
			view("getProxyAdmin", []string{"address _proxy"}, "address"),
			write("changeProxyAdmin", "address _proxy", "address _newAdmin"),
			write("upgrade", "address _proxy", "address _implementation"),
			write("upgradeAndCall", "address _proxy", "address _implementation", "bytes _data"),
		),
		Run: func(x *Exec, m abi.Method, args []any) ([]any, error) {
			typeOf := func(proxy common.Address) uint8 {
				t, _ := x.Get("type:" + proxy.Hex()).(uint8)
				return t
			}
			nameOf := func(proxy common.Address) string {
				n, _ := x.Get("name:" + proxy.Hex()).(string)
				return n
			}

			switch m.Name {
			case "":
				x.Set("owner", args[0].(common.Address))
				return nil, nil
			case "owner":
				return []any{x.Address("owner")}, nil
			case "addressManager":
				return []any{x.Address("addressManager")}, nil
			case "proxyType":
				return []any{typeOf(args[0].(common.Address))}, nil
			case "implementationName":
				return []any{nameOf(args[0].(common.Address))}, nil
			case "getProxyImplementation":
				proxy := args[0].(common.Address)
				switch typeOf(proxy) {
				case typeERC1967:
					return x.Call(proxy, "implementation")
				case typeChugSplash:
					return x.Call(proxy, "getImplementation")
				default:
					return x.Call(x.Address("addressManager"), "getAddress", nameOf(proxy))
				}
			case "getProxyAdmin":
				proxy := args[0].(common.Address)
				switch typeOf(proxy) {
				case typeERC1967:
					return x.Call(proxy, "admin")
				case typeChugSplash:
					return x.Call(proxy, "getOwner")
				default:
					return x.Call(x.Address("addressManager"), "owner")
				}
			}

			if err := x.OnlyOwner(); err != nil {
				return nil, err
			}
			switch m.Name {
			case "transferOwnership":
				x.Set("owner", args[0].(common.Address))
			case "setAddressManager":
				x.Set("addressManager", args[0].(common.Address))
			case "setProxyType":
				x.Set("type:"+args[0].(common.Address).Hex(), args[1].(uint8))
			case "setImplementationName":
				x.Set("name:"+args[0].(common.Address).Hex(), args[1].(string))
			case "changeProxyAdmin":
				proxy, admin := args[0].(common.Address), args[1].(common.Address)
				var err error
				switch typeOf(proxy) {
				case typeERC1967:
					_, err = x.Call(proxy, "changeAdmin", admin)
				case typeChugSplash:
					_, err = x.Call(proxy, "setOwner", admin)
				default:
					_, err = x.Call(x.Address("addressManager"), "transferOwnership", admin)
				}
				return nil, err
			case "upgrade", "upgradeAndCall":
				proxy, impl := args[0].(common.Address), args[1].(common.Address)
				var err error
				switch typeOf(proxy) {
				case typeERC1967:
					if m.Name == "upgradeAndCall" {
						_, err = x.Call(proxy, "upgradeToAndCall", impl, args[2].([]byte))
						return nil, err
					}
					_, err = x.Call(proxy, "upgradeTo", impl)
				case typeChugSplash:
					_, err = x.Call(proxy, "upgradeTo", impl)
				default:
					_, err = x.Call(x.Address("addressManager"), "setAddress", nameOf(proxy), impl)
				}
				if err != nil || m.Name == "upgrade" {
					return nil, err
				}
				return nil, x.CallData(proxy, args[2].([]byte))
			}
			return nil, nil
		},
	}
}

// AddressManager is an owned name -> address table
func AddressManager() *Definition {
	return &Definition{
		Name: "AddressManager",
		ABI: abiJSON(
			constructor(),
			view("owner", nil, "address"),
			write("transferOwnership", "address newOwner"),
			view("getAddress", []string{"string _name"}, "address"),
			write("setAddress", "string _name", "address _address"),
		),
		Run: func(x *Exec, m abi.Method, args []any) ([]any, error) {
			switch m.Name {
			case "":
				x.Set("owner", x.Sender)
				return nil, nil
			case "owner":
				return []any{x.Address("owner")}, nil
			case "getAddress":
				return []any{x.Address("addr:" + args[0].(string))}, nil
			}

			if err := x.OnlyOwner(); err != nil {
				return nil, err
			}
			switch m.Name {
			case "transferOwnership":
				x.Set("owner", args[0].(common.Address))
			case "setAddress":
				x.Set("addr:"+args[0].(string), args[1].(common.Address))
			}
			return nil, nil
		},
	}
}

// adminForward serves the proxy's own methods to its admin (and to
// eth_call's zero sender) and delegates everything else
func adminForward(own []string) func(x *Exec, data []byte) (common.Address, bool) {
	return func(x *Exec, data []byte) (common.Address, bool) {
		impl := x.Address("proxy.implementation")
		if len(data) < 4 {
			return impl, true
		}
		m, err := x.acct.def.parsed.MethodById(data[:4])
		if err != nil || !contains(own, m.Name) {
			return impl, true
		}
		admin := addressOf(x.Slot(AdminSlot))
		if x.Sender == admin || x.Sender == (common.Address{}) {
			return common.Address{}, false
		}
		return impl, true
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Proxy is the ERC-1967 transparent proxy
func Proxy() *Definition {
	return &Definition{
		Name: "Proxy",
		ABI: abiJSON(
			constructor("address _admin"),
			write("upgradeTo", "address _implementation"),
			write("upgradeToAndCall", "address _implementation", "bytes _data"),
			write("changeAdmin", "address _admin"),
			view("admin", nil, "address"),
			view("implementation", nil, "address"),
		),
		Forward: adminForward([]string{"upgradeTo", "upgradeToAndCall", "changeAdmin", "admin", "implementation"}),
		Run: func(x *Exec, m abi.Method, args []any) ([]any, error) {
			switch m.Name {
			case "", "changeAdmin":
				x.SetSlot(AdminSlot, hashOf(args[0].(common.Address)))
			case "upgradeTo":
				x.Set("proxy.implementation", args[0].(common.Address))
			case "upgradeToAndCall":
				impl := args[0].(common.Address)
				x.Set("proxy.implementation", impl)
				return nil, x.Delegate(impl, args[1].([]byte))
			case "admin":
				return []any{addressOf(x.Slot(AdminSlot))}, nil
			case "implementation":
				return []any{x.Address("proxy.implementation")}, nil
			}
			return nil, nil
		},
	}
}

// L1ChugSplashProxy is the legacy-slot proxy. Its owner lives in the admin slot.
func L1ChugSplashProxy() *Definition {
	return &Definition{
		Name: "L1ChugSplashProxy",
		ABI: abiJSON(
			constructor("address _owner"),
			write("setOwner", "address _owner"),
			write("upgradeTo", "address _implementation"),
			view("getOwner", nil, "address"),
			view("getImplementation", nil, "address"),
		),
		Forward: adminForward([]string{"setOwner", "upgradeTo", "getOwner", "getImplementation"}),
		Run: func(x *Exec, m abi.Method, args []any) ([]any, error) {
			switch m.Name {
			case "", "setOwner":
				x.SetSlot(AdminSlot, hashOf(args[0].(common.Address)))
			case "upgradeTo":
				x.Set("proxy.implementation", args[0].(common.Address))
			case "getOwner":
				return []any{addressOf(x.Slot(AdminSlot))}, nil
			case "getImplementation":
				return []any{x.Address("proxy.implementation")}, nil
			}
			return nil, nil
		},
	}
}

// ResolvedDelegateProxy resolves its implementation by name through an address manager
func ResolvedDelegateProxy() *Definition {
	return &Definition{
		Name: "ResolvedDelegateProxy",
		ABI:  abiJSON(constructor("address _addressManager", "string _implementationName")),
		Forward: func(x *Exec, data []byte) (common.Address, bool) {
			manager := x.peek(addressOf(x.Slot(ResolvedManagerSlot(x.Self))))
			if manager == nil {
				return common.Address{}, true
			}
			name, _ := x.Get("resolved.name").(string)
			impl, _ := manager.vars["addr:"+name].(common.Address)
			return impl, true
		},
		Run: func(x *Exec, m abi.Method, args []any) ([]any, error) {
			x.SetSlot(ResolvedManagerSlot(x.Self), hashOf(args[0].(common.Address)))
			x.Set("resolved.name", args[1].(string))
			return nil, nil
		},
	}
}

// DisputeGameFactory keeps one implementation and bond per game type
func DisputeGameFactory() *Definition {
	return &Definition{
		Name: "DisputeGameFactory",
		ABI: abiJSON(
			constructor(),
			write("initialize", "address owner"),
			view("owner", nil, "address"),
			write("transferOwnership", "address newOwner"),
			view("gameImpls", []string{"uint32"}, "address"),
			view("initBonds", []string{"uint32"}, "uint256"),
			write("setImplementation", "uint32 _gameType", "address _impl"),
			write("setInitBond", "uint32 _gameType", "uint256 _initBond"),
		),
		Run: func(x *Exec, m abi.Method, args []any) ([]any, error) {
			key := func(prefix string) string {
				return prefix + big.NewInt(int64(args[0].(uint32))).String()
			}

			switch m.Name {
			case "":
				return nil, nil
			case "initialize":
				if x.Get("initialized") == true {
					return nil, x.Revert("already initialized")
				}
				x.Set("initialized", true)
				x.Set("owner", args[0].(common.Address))
				return nil, nil
			case "owner":
				return []any{x.Address("owner")}, nil
			case "gameImpls":
				return []any{x.Address(key("impl:"))}, nil
			case "initBonds":
				bond, _ := x.Get(key("bond:")).(*big.Int)
				if bond == nil {
					bond = new(big.Int)
				}
				return []any{bond}, nil
			}

			if err := x.OnlyOwner(); err != nil {
				return nil, err
			}
			switch m.Name {
			case "transferOwnership":
				x.Set("owner", args[0].(common.Address))
			case "setImplementation":
				x.Set(key("impl:"), args[1].(common.Address))
			case "setInitBond":
				x.Set(key("bond:"), args[1].(*big.Int))
			}
			return nil, nil
		},
	}
}

// Implementation is a generic owned, initializable contract. Every
// constructor and initializer parameter is stored under its name and
// readable through a getter of the same name.
func Implementation(name string, ctor, init []string) *Definition {
	entries := []abiEntry{constructor(ctor...)}
	if len(init) > 0 {
		entries = append(entries, write("initialize", init...))
	}

	getters := map[string]bool{}
	for _, p := range params(append(append([]string{}, ctor...), init...)...) {
		if getters[p.Name] {
			continue
		}
		getters[p.Name] = true
		entries = append(entries, view(p.Name, nil, p.Type))
	}
	if !getters["owner"] {
		entries = append(entries, view("owner", nil, "address"))
	}
	entries = append(entries, write("transferOwnership", "address newOwner"))

	ctorParams := params(ctor...)
	return &Definition{
		Name: name,
		ABI:  abiJSON(entries...),
		Run: func(x *Exec, m abi.Method, args []any) ([]any, error) {
			switch {
			case m.Name == "":
				for i, p := range ctorParams {
					x.Set(p.Name, args[i])
				}
				return nil, nil
			case m.Name == "initialize":
				if x.Get("initialized") == true {
					return nil, x.Revert("%s: already initialized", name)
				}
				x.Set("initialized", true)
				for i, in := range m.Inputs {
					x.Set(in.Name, args[i])
				}
				return nil, nil
			case m.Name == "transferOwnership":
				if err := x.OnlyOwner(); err != nil {
					return nil, err
				}
				x.Set("owner", args[0].(common.Address))
				return nil, nil
			case len(m.Outputs) == 1 && len(m.Inputs) == 0:
				v := x.Get(m.Name)
				if v == nil {
					v = zero(m.Outputs[0].Type)
				}
				return []any{v}, nil
			default:
				return nil, x.Revert("%s: unsupported method %s", name, strings.TrimSpace(m.Sig))
			}
		},
	}
}
