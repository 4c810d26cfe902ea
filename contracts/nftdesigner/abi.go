package nftdesigner

// NFTDesignerABI is the ABI of the deployed NFTDesigner contract, limited to
// the surface this service drives.
const NFTDesignerABI = `[
	{"type":"function","name":"mint","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"uri","type":"string"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"mintBatch","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"uris","type":"string[]"}],"outputs":[{"name":"","type":"uint256[]"}]},
	{"type":"function","name":"pause","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"unpause","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"setBaseURI","stateMutability":"nonpayable","inputs":[{"name":"newBaseURI","type":"string"}],"outputs":[]},
	{"type":"function","name":"setMintPrice","stateMutability":"nonpayable","inputs":[{"name":"newPrice","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"tokenURI","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"ownerOf","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"mintPrice","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"paused","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"MAX_SUPPLY","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"event","name":"NFTMinted","inputs":[{"name":"to","type":"address","indexed":true},{"name":"tokenId","type":"uint256","indexed":true},{"name":"tokenURI","type":"string","indexed":false}],"anonymous":false}
]`
