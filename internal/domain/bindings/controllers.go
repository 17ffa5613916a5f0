package bindings

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
)

// ProxyAdminMetaData contains all meta data concerning the ProxyAdmin contract.
var ProxyAdminMetaData = bind.MetaData{
	ABI: "[{\"type\":\"function\",\"name\":\"addressManager\",\"inputs\":[],\"outputs\":[{\"name\":\"\",\"type\":\"address\",\"internalType\":\"address\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"changeProxyAdmin\",\"inputs\":[{\"name\":\"_proxy\",\"type\":\"address\",\"internalType\":\"address\"},{\"name\":\"_newAdmin\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[],\"stateMutability\":\"nonpayable\"},{\"type\":\"function\",\"name\":\"getProxyAdmin\",\"inputs\":[{\"name\":\"_proxy\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[{\"name\":\"\",\"type\":\"address\",\"internalType\":\"address\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"getProxyImplementation\",\"inputs\":[{\"name\":\"_proxy\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[{\"name\":\"\",\"type\":\"address\",\"internalType\":\"address\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"implementationName\",\"inputs\":[{\"name\":\"\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[{\"name\":\"\",\"type\":\"string\",\"internalType\":\"string\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"owner\",\"inputs\":[],\"outputs\":[{\"name\":\"\",\"type\":\"address\",\"internalType\":\"address\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"proxyType\",\"inputs\":[{\"name\":\"\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[{\"name\":\"\",\"type\":\"uint8\",\"internalType\":\"uint8\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"setAddressManager\",\"inputs\":[{\"name\":\"_address\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[],\"stateMutability\":\"nonpayable\"},{\"type\":\"function\",\"name\":\"setImplementationName\",\"inputs\":[{\"name\":\"_address\",\"type\":\"address\",\"internalType\":\"address\"},{\"name\":\"_name\",\"type\":\"string\",\"internalType\":\"string\"}],\"outputs\":[],\"stateMutability\":\"nonpayable\"},{\"type\":\"function\",\"name\":\"setProxyType\",\"inputs\":[{\"name\":\"_address\",\"type\":\"address\",\"internalType\":\"address\"},{\"name\":\"_type\",\"type\":\"uint8\",\"internalType\":\"uint8\"}],\"outputs\":[],\"stateMutability\":\"nonpayable\"},{\"type\":\"function\",\"name\":\"transferOwnership\",\"inputs\":[{\"name\":\"newOwner\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[],\"stateMutability\":\"nonpayable\"},{\"type\":\"function\",\"name\":\"upgrade\",\"inputs\":[{\"name\":\"_proxy\",\"type\":\"address\",\"internalType\":\"address\"},{\"name\":\"_implementation\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[],\"stateMutability\":\"nonpayable\"},{\"type\":\"function\",\"name\":\"upgradeAndCall\",\"inputs\":[{\"name\":\"_proxy\",\"type\":\"address\",\"internalType\":\"address\"},{\"name\":\"_implementation\",\"type\":\"address\",\"internalType\":\"address\"},{\"name\":\"_data\",\"type\":\"bytes\",\"internalType\":\"bytes\"}],\"outputs\":[],\"stateMutability\":\"payable\"}]",
	ID:  "ProxyAdmin",
}

// ProxyAdmin owns the forwarding units and routes upgrades to them.
type ProxyAdmin struct {
	abi abi.ABI
}

// NewProxyAdmin creates a new instance of ProxyAdmin.
func NewProxyAdmin() *ProxyAdmin {
	parsed, err := ProxyAdminMetaData.ParseABI()
	if err != nil {
		panic(errors.New("invalid ABI: " + err.Error()))
	}
	return &ProxyAdmin{abi: *parsed}
}

// ABI returns the parsed contract interface.
func (proxyAdmin *ProxyAdmin) ABI() abi.ABI {
	return proxyAdmin.abi
}

// PackAddressManager is the Go binding used to pack the parameters required for calling
// the contract method addressManager. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function addressManager() view returns(address)
func (proxyAdmin *ProxyAdmin) PackAddressManager() []byte {
	enc, err := proxyAdmin.abi.Pack("addressManager")
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackAddressManager is the Go binding that unpacks the parameters returned
// from invoking the contract method addressManager.
//
// Solidity: function addressManager() view returns(address)
func (proxyAdmin *ProxyAdmin) UnpackAddressManager(data []byte) (common.Address, error) {
	out, err := proxyAdmin.abi.Unpack("addressManager", data)
	if err != nil {
		return *new(common.Address), err
	}
	out0 := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	return out0, nil
}

// PackChangeProxyAdmin is the Go binding used to pack the parameters required for calling
// the contract method changeProxyAdmin. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function changeProxyAdmin(address _proxy, address _newAdmin)
func (proxyAdmin *ProxyAdmin) PackChangeProxyAdmin(proxy common.Address, newAdmin common.Address) []byte {
	enc, err := proxyAdmin.abi.Pack("changeProxyAdmin", proxy, newAdmin)
	if err != nil {
		panic(err)
	}
	return enc
}

// PackGetProxyAdmin is the Go binding used to pack the parameters required for calling
// the contract method getProxyAdmin. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function getProxyAdmin(address _proxy) view returns(address)
func (proxyAdmin *ProxyAdmin) PackGetProxyAdmin(proxy common.Address) []byte {
	enc, err := proxyAdmin.abi.Pack("getProxyAdmin", proxy)
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackGetProxyAdmin is the Go binding that unpacks the parameters returned
// from invoking the contract method getProxyAdmin.
//
// Solidity: function getProxyAdmin(address _proxy) view returns(address)
func (proxyAdmin *ProxyAdmin) UnpackGetProxyAdmin(data []byte) (common.Address, error) {
	out, err := proxyAdmin.abi.Unpack("getProxyAdmin", data)
	if err != nil {
		return *new(common.Address), err
	}
	out0 := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	return out0, nil
}

// PackGetProxyImplementation is the Go binding used to pack the parameters required for calling
// the contract method getProxyImplementation. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function getProxyImplementation(address _proxy) view returns(address)
func (proxyAdmin *ProxyAdmin) PackGetProxyImplementation(proxy common.Address) []byte {
	enc, err := proxyAdmin.abi.Pack("getProxyImplementation", proxy)
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackGetProxyImplementation is the Go binding that unpacks the parameters returned
// from invoking the contract method getProxyImplementation.
//
// Solidity: function getProxyImplementation(address _proxy) view returns(address)
func (proxyAdmin *ProxyAdmin) UnpackGetProxyImplementation(data []byte) (common.Address, error) {
	out, err := proxyAdmin.abi.Unpack("getProxyImplementation", data)
	if err != nil {
		return *new(common.Address), err
	}
	out0 := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	return out0, nil
}

// PackImplementationName is the Go binding used to pack the parameters required for calling
// the contract method implementationName. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function implementationName(address) view returns(string)
func (proxyAdmin *ProxyAdmin) PackImplementationName(arg0 common.Address) []byte {
	enc, err := proxyAdmin.abi.Pack("implementationName", arg0)
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackImplementationName is the Go binding that unpacks the parameters returned
// from invoking the contract method implementationName.
//
// Solidity: function implementationName(address) view returns(string)
func (proxyAdmin *ProxyAdmin) UnpackImplementationName(data []byte) (string, error) {
	out, err := proxyAdmin.abi.Unpack("implementationName", data)
	if err != nil {
		return *new(string), err
	}
	out0 := *abi.ConvertType(out[0], new(string)).(*string)
	return out0, nil
}

// PackOwner is the Go binding used to pack the parameters required for calling
// the contract method owner. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function owner() view returns(address)
func (proxyAdmin *ProxyAdmin) PackOwner() []byte {
	enc, err := proxyAdmin.abi.Pack("owner")
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackOwner is the Go binding that unpacks the parameters returned
// from invoking the contract method owner.
//
// Solidity: function owner() view returns(address)
func (proxyAdmin *ProxyAdmin) UnpackOwner(data []byte) (common.Address, error) {
	out, err := proxyAdmin.abi.Unpack("owner", data)
	if err != nil {
		return *new(common.Address), err
	}
	out0 := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	return out0, nil
}

// PackProxyType is the Go binding used to pack the parameters required for calling
// the contract method proxyType. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function proxyType(address) view returns(uint8)
func (proxyAdmin *ProxyAdmin) PackProxyType(arg0 common.Address) []byte {
	enc, err := proxyAdmin.abi.Pack("proxyType", arg0)
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackProxyType is the Go binding that unpacks the parameters returned
// from invoking the contract method proxyType.
//
// Solidity: function proxyType(address) view returns(uint8)
func (proxyAdmin *ProxyAdmin) UnpackProxyType(data []byte) (uint8, error) {
	out, err := proxyAdmin.abi.Unpack("proxyType", data)
	if err != nil {
		return *new(uint8), err
	}
	out0 := *abi.ConvertType(out[0], new(uint8)).(*uint8)
	return out0, nil
}

// PackSetAddressManager is the Go binding used to pack the parameters required for calling
// the contract method setAddressManager. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function setAddressManager(address _address)
func (proxyAdmin *ProxyAdmin) PackSetAddressManager(address common.Address) []byte {
	enc, err := proxyAdmin.abi.Pack("setAddressManager", address)
	if err != nil {
		panic(err)
	}
	return enc
}

// PackSetImplementationName is the Go binding used to pack the parameters required for calling
// the contract method setImplementationName. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function setImplementationName(address _address, string _name)
func (proxyAdmin *ProxyAdmin) PackSetImplementationName(address common.Address, name string) []byte {
	enc, err := proxyAdmin.abi.Pack("setImplementationName", address, name)
	if err != nil {
		panic(err)
	}
	return enc
}

// PackSetProxyType is the Go binding used to pack the parameters required for calling
// the contract method setProxyType. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function setProxyType(address _address, uint8 _type)
func (proxyAdmin *ProxyAdmin) PackSetProxyType(address common.Address, proxyType uint8) []byte {
	enc, err := proxyAdmin.abi.Pack("setProxyType", address, proxyType)
	if err != nil {
		panic(err)
	}
	return enc
}

// PackTransferOwnership is the Go binding used to pack the parameters required for calling
// the contract method transferOwnership. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function transferOwnership(address newOwner)
func (proxyAdmin *ProxyAdmin) PackTransferOwnership(newOwner common.Address) []byte {
	enc, err := proxyAdmin.abi.Pack("transferOwnership", newOwner)
	if err != nil {
		panic(err)
	}
	return enc
}

// PackUpgrade is the Go binding used to pack the parameters required for calling
// the contract method upgrade. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function upgrade(address _proxy, address _implementation)
func (proxyAdmin *ProxyAdmin) PackUpgrade(proxy common.Address, implementation common.Address) []byte {
	enc, err := proxyAdmin.abi.Pack("upgrade", proxy, implementation)
	if err != nil {
		panic(err)
	}
	return enc
}

// PackUpgradeAndCall is the Go binding used to pack the parameters required for calling
// the contract method upgradeAndCall. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function upgradeAndCall(address _proxy, address _implementation, bytes _data) payable
func (proxyAdmin *ProxyAdmin) PackUpgradeAndCall(proxy common.Address, implementation common.Address, data []byte) []byte {
	enc, err := proxyAdmin.abi.Pack("upgradeAndCall", proxy, implementation, data)
	if err != nil {
		panic(err)
	}
	return enc
}

// AddressManagerMetaData contains all meta data concerning the AddressManager contract.
var AddressManagerMetaData = bind.MetaData{
	ABI: "[{\"type\":\"function\",\"name\":\"getAddress\",\"inputs\":[{\"name\":\"_name\",\"type\":\"string\",\"internalType\":\"string\"}],\"outputs\":[{\"name\":\"\",\"type\":\"address\",\"internalType\":\"address\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"owner\",\"inputs\":[],\"outputs\":[{\"name\":\"\",\"type\":\"address\",\"internalType\":\"address\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"setAddress\",\"inputs\":[{\"name\":\"_name\",\"type\":\"string\",\"internalType\":\"string\"},{\"name\":\"_address\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[],\"stateMutability\":\"nonpayable\"},{\"type\":\"function\",\"name\":\"transferOwnership\",\"inputs\":[{\"name\":\"newOwner\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[],\"stateMutability\":\"nonpayable\"}]",
	ID:  "AddressManager",
}

// AddressManager is the name registry behind resolved-delegate proxies.
type AddressManager struct {
	abi abi.ABI
}

// NewAddressManager creates a new instance of AddressManager.
func NewAddressManager() *AddressManager {
	parsed, err := AddressManagerMetaData.ParseABI()
	if err != nil {
		panic(errors.New("invalid ABI: " + err.Error()))
	}
	return &AddressManager{abi: *parsed}
}

// ABI returns the parsed contract interface.
func (addressManager *AddressManager) ABI() abi.ABI {
	return addressManager.abi
}

// PackGetAddress is the Go binding used to pack the parameters required for calling
// the contract method getAddress. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function getAddress(string _name) view returns(address)
func (addressManager *AddressManager) PackGetAddress(name string) []byte {
	enc, err := addressManager.abi.Pack("getAddress", name)
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackGetAddress is the Go binding that unpacks the parameters returned
// from invoking the contract method getAddress.
//
// Solidity: function getAddress(string _name) view returns(address)
func (addressManager *AddressManager) UnpackGetAddress(data []byte) (common.Address, error) {
	out, err := addressManager.abi.Unpack("getAddress", data)
	if err != nil {
		return *new(common.Address), err
	}
	out0 := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	return out0, nil
}

// PackOwner is the Go binding used to pack the parameters required for calling
// the contract method owner. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function owner() view returns(address)
func (addressManager *AddressManager) PackOwner() []byte {
	enc, err := addressManager.abi.Pack("owner")
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackOwner is the Go binding that unpacks the parameters returned
// from invoking the contract method owner.
//
// Solidity: function owner() view returns(address)
func (addressManager *AddressManager) UnpackOwner(data []byte) (common.Address, error) {
	out, err := addressManager.abi.Unpack("owner", data)
	if err != nil {
		return *new(common.Address), err
	}
	out0 := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	return out0, nil
}

// PackSetAddress is the Go binding used to pack the parameters required for calling
// the contract method setAddress. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function setAddress(string _name, address _address)
func (addressManager *AddressManager) PackSetAddress(name string, address common.Address) []byte {
	enc, err := addressManager.abi.Pack("setAddress", name, address)
	if err != nil {
		panic(err)
	}
	return enc
}

// PackTransferOwnership is the Go binding used to pack the parameters required for calling
// the contract method transferOwnership. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function transferOwnership(address newOwner)
func (addressManager *AddressManager) PackTransferOwnership(newOwner common.Address) []byte {
	enc, err := addressManager.abi.Pack("transferOwnership", newOwner)
	if err != nil {
		panic(err)
	}
	return enc
}

// ProxyMetaData contains all meta data concerning the Proxy contract.
var ProxyMetaData = bind.MetaData{
	ABI: "[{\"type\":\"function\",\"name\":\"changeAdmin\",\"inputs\":[{\"name\":\"_admin\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[],\"stateMutability\":\"nonpayable\"},{\"type\":\"function\",\"name\":\"upgradeTo\",\"inputs\":[{\"name\":\"_implementation\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[],\"stateMutability\":\"nonpayable\"}]",
	ID:  "Proxy",
}

// Proxy is the ERC-1967 transparent forwarding unit.
type Proxy struct {
	abi abi.ABI
}

// NewProxy creates a new instance of Proxy.
func NewProxy() *Proxy {
	parsed, err := ProxyMetaData.ParseABI()
	if err != nil {
		panic(errors.New("invalid ABI: " + err.Error()))
	}
	return &Proxy{abi: *parsed}
}

// ABI returns the parsed contract interface.
func (proxy *Proxy) ABI() abi.ABI {
	return proxy.abi
}

// PackChangeAdmin is the Go binding used to pack the parameters required for calling
// the contract method changeAdmin. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function changeAdmin(address _admin)
func (proxy *Proxy) PackChangeAdmin(admin common.Address) []byte {
	enc, err := proxy.abi.Pack("changeAdmin", admin)
	if err != nil {
		panic(err)
	}
	return enc
}

// PackUpgradeTo is the Go binding used to pack the parameters required for calling
// the contract method upgradeTo. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function upgradeTo(address _implementation)
func (proxy *Proxy) PackUpgradeTo(implementation common.Address) []byte {
	enc, err := proxy.abi.Pack("upgradeTo", implementation)
	if err != nil {
		panic(err)
	}
	return enc
}

// L1ChugSplashProxyMetaData contains all meta data concerning the L1ChugSplashProxy contract.
var L1ChugSplashProxyMetaData = bind.MetaData{
	ABI: "[{\"type\":\"function\",\"name\":\"setOwner\",\"inputs\":[{\"name\":\"_owner\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[],\"stateMutability\":\"nonpayable\"}]",
	ID:  "L1ChugSplashProxy",
}

// L1ChugSplashProxy is the legacy-slot forwarding unit.
type L1ChugSplashProxy struct {
	abi abi.ABI
}

// NewL1ChugSplashProxy creates a new instance of L1ChugSplashProxy.
func NewL1ChugSplashProxy() *L1ChugSplashProxy {
	parsed, err := L1ChugSplashProxyMetaData.ParseABI()
	if err != nil {
		panic(errors.New("invalid ABI: " + err.Error()))
	}
	return &L1ChugSplashProxy{abi: *parsed}
}

// ABI returns the parsed contract interface.
func (l1ChugSplashProxy *L1ChugSplashProxy) ABI() abi.ABI {
	return l1ChugSplashProxy.abi
}

// PackSetOwner is the Go binding used to pack the parameters required for calling
// the contract method setOwner. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function setOwner(address _owner)
func (l1ChugSplashProxy *L1ChugSplashProxy) PackSetOwner(owner common.Address) []byte {
	enc, err := l1ChugSplashProxy.abi.Pack("setOwner", owner)
	if err != nil {
		panic(err)
	}
	return enc
}

// OwnableMetaData contains all meta data concerning the Ownable contract.
var OwnableMetaData = bind.MetaData{
	ABI: "[{\"type\":\"function\",\"name\":\"owner\",\"inputs\":[],\"outputs\":[{\"name\":\"\",\"type\":\"address\",\"internalType\":\"address\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"transferOwnership\",\"inputs\":[{\"name\":\"newOwner\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[],\"stateMutability\":\"nonpayable\"}]",
	ID:  "Ownable",
}

// Ownable covers any unit with a single owner() authority.
type Ownable struct {
	abi abi.ABI
}

// NewOwnable creates a new instance of Ownable.
func NewOwnable() *Ownable {
	parsed, err := OwnableMetaData.ParseABI()
	if err != nil {
		panic(errors.New("invalid ABI: " + err.Error()))
	}
	return &Ownable{abi: *parsed}
}

// ABI returns the parsed contract interface.
func (ownable *Ownable) ABI() abi.ABI {
	return ownable.abi
}

// PackOwner is the Go binding used to pack the parameters required for calling
// the contract method owner. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function owner() view returns(address)
func (ownable *Ownable) PackOwner() []byte {
	enc, err := ownable.abi.Pack("owner")
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackOwner is the Go binding that unpacks the parameters returned
// from invoking the contract method owner.
//
// Solidity: function owner() view returns(address)
func (ownable *Ownable) UnpackOwner(data []byte) (common.Address, error) {
	out, err := ownable.abi.Unpack("owner", data)
	if err != nil {
		return *new(common.Address), err
	}
	out0 := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	return out0, nil
}

// PackTransferOwnership is the Go binding used to pack the parameters required for calling
// the contract method transferOwnership. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function transferOwnership(address newOwner)
func (ownable *Ownable) PackTransferOwnership(newOwner common.Address) []byte {
	enc, err := ownable.abi.Pack("transferOwnership", newOwner)
	if err != nil {
		panic(err)
	}
	return enc
}

// DisputeGameFactoryMetaData contains all meta data concerning the DisputeGameFactory contract.
var DisputeGameFactoryMetaData = bind.MetaData{
	ABI: "[{\"type\":\"function\",\"name\":\"gameImpls\",\"inputs\":[{\"name\":\"\",\"type\":\"uint32\",\"internalType\":\"uint32\"}],\"outputs\":[{\"name\":\"\",\"type\":\"address\",\"internalType\":\"address\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"initBonds\",\"inputs\":[{\"name\":\"\",\"type\":\"uint32\",\"internalType\":\"uint32\"}],\"outputs\":[{\"name\":\"\",\"type\":\"uint256\",\"internalType\":\"uint256\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"owner\",\"inputs\":[],\"outputs\":[{\"name\":\"\",\"type\":\"address\",\"internalType\":\"address\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"setImplementation\",\"inputs\":[{\"name\":\"_gameType\",\"type\":\"uint32\",\"internalType\":\"uint32\"},{\"name\":\"_impl\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[],\"stateMutability\":\"nonpayable\"},{\"type\":\"function\",\"name\":\"setInitBond\",\"inputs\":[{\"name\":\"_gameType\",\"type\":\"uint32\",\"internalType\":\"uint32\"},{\"name\":\"_initBond\",\"type\":\"uint256\",\"internalType\":\"uint256\"}],\"outputs\":[],\"stateMutability\":\"nonpayable\"}]",
	ID:  "DisputeGameFactory",
}

// DisputeGameFactory keeps one implementation per game type.
type DisputeGameFactory struct {
	abi abi.ABI
}

// NewDisputeGameFactory creates a new instance of DisputeGameFactory.
func NewDisputeGameFactory() *DisputeGameFactory {
	parsed, err := DisputeGameFactoryMetaData.ParseABI()
	if err != nil {
		panic(errors.New("invalid ABI: " + err.Error()))
	}
	return &DisputeGameFactory{abi: *parsed}
}

// ABI returns the parsed contract interface.
func (disputeGameFactory *DisputeGameFactory) ABI() abi.ABI {
	return disputeGameFactory.abi
}

// PackGameImpls is the Go binding used to pack the parameters required for calling
// the contract method gameImpls. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function gameImpls(uint32) view returns(address)
func (disputeGameFactory *DisputeGameFactory) PackGameImpls(arg0 uint32) []byte {
	enc, err := disputeGameFactory.abi.Pack("gameImpls", arg0)
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackGameImpls is the Go binding that unpacks the parameters returned
// from invoking the contract method gameImpls.
//
// Solidity: function gameImpls(uint32) view returns(address)
func (disputeGameFactory *DisputeGameFactory) UnpackGameImpls(data []byte) (common.Address, error) {
	out, err := disputeGameFactory.abi.Unpack("gameImpls", data)
	if err != nil {
		return *new(common.Address), err
	}
	out0 := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	return out0, nil
}

// PackInitBonds is the Go binding used to pack the parameters required for calling
// the contract method initBonds. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function initBonds(uint32) view returns(uint256)
func (disputeGameFactory *DisputeGameFactory) PackInitBonds(arg0 uint32) []byte {
	enc, err := disputeGameFactory.abi.Pack("initBonds", arg0)
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackInitBonds is the Go binding that unpacks the parameters returned
// from invoking the contract method initBonds.
//
// Solidity: function initBonds(uint32) view returns(uint256)
func (disputeGameFactory *DisputeGameFactory) UnpackInitBonds(data []byte) (*big.Int, error) {
	out, err := disputeGameFactory.abi.Unpack("initBonds", data)
	if err != nil {
		return *new(*big.Int), err
	}
	out0 := abi.ConvertType(out[0], new(big.Int)).(*big.Int)
	return out0, nil
}

// PackOwner is the Go binding used to pack the parameters required for calling
// the contract method owner. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function owner() view returns(address)
func (disputeGameFactory *DisputeGameFactory) PackOwner() []byte {
	enc, err := disputeGameFactory.abi.Pack("owner")
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackOwner is the Go binding that unpacks the parameters returned
// from invoking the contract method owner.
//
// Solidity: function owner() view returns(address)
func (disputeGameFactory *DisputeGameFactory) UnpackOwner(data []byte) (common.Address, error) {
	out, err := disputeGameFactory.abi.Unpack("owner", data)
	if err != nil {
		return *new(common.Address), err
	}
	out0 := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	return out0, nil
}

// PackSetImplementation is the Go binding used to pack the parameters required for calling
// the contract method setImplementation. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function setImplementation(uint32 _gameType, address _impl)
func (disputeGameFactory *DisputeGameFactory) PackSetImplementation(gameType uint32, impl common.Address) []byte {
	enc, err := disputeGameFactory.abi.Pack("setImplementation", gameType, impl)
	if err != nil {
		panic(err)
	}
	return enc
}

// PackSetInitBond is the Go binding used to pack the parameters required for calling
// the contract method setInitBond. This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function setInitBond(uint32 _gameType, uint256 _initBond)
func (disputeGameFactory *DisputeGameFactory) PackSetInitBond(gameType uint32, initBond *big.Int) []byte {
	enc, err := disputeGameFactory.abi.Pack("setInitBond", gameType, initBond)
	if err != nil {
		panic(err)
	}
	return enc
}
