package registry

// DefaultABI is the NPO registry contract interface used when no ABI is supplied.
const DefaultABI = `[
  {
    "type": "function",
    "name": "registerNpo",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "name", "type": "string"},
      {"name": "descriptionCid", "type": "string"},
      {"name": "legalId", "type": "string"},
      {"name": "categories", "type": "string[]"},
      {"name": "country", "type": "string"},
      {"name": "tokenName", "type": "string"},
      {"name": "tokenSymbol", "type": "string"},
      {"name": "tokenDescription", "type": "string"},
      {"name": "tokenIconCid", "type": "string"}
    ],
    "outputs": [{"name": "tokenId", "type": "uint32"}]
  },
  {
    "type": "function",
    "name": "getNpo",
    "stateMutability": "view",
    "inputs": [{"name": "npo", "type": "address"}],
    "outputs": [
      {
        "name": "",
        "type": "tuple",
        "components": [
          {"name": "owner", "type": "address"},
          {"name": "governanceTokenId", "type": "uint32"},
          {"name": "registeredAt", "type": "uint64"},
          {"name": "descriptionCid", "type": "string"},
          {"name": "name", "type": "string"},
          {"name": "legalId", "type": "string"},
          {"name": "categories", "type": "string[]"},
          {"name": "country", "type": "string"}
        ]
      }
    ]
  },
  {
    "type": "function",
    "name": "getTokenMetadata",
    "stateMutability": "view",
    "inputs": [{"name": "tokenId", "type": "uint32"}],
    "outputs": [
      {
        "name": "",
        "type": "tuple",
        "components": [
          {"name": "name", "type": "string"},
          {"name": "symbol", "type": "string"},
          {"name": "decimals", "type": "uint8"},
          {"name": "description", "type": "string"},
          {"name": "iconCid", "type": "string"}
        ]
      }
    ]
  },
  {
    "type": "function",
    "name": "getAuditorRegistry",
    "stateMutability": "view",
    "inputs": [],
    "outputs": [{"name": "", "type": "address"}]
  },
  {
    "type": "function",
    "name": "getNpoCount",
    "stateMutability": "view",
    "inputs": [],
    "outputs": [{"name": "", "type": "uint32"}]
  },
  {
    "type": "function",
    "name": "isRegisteredNpo",
    "stateMutability": "view",
    "inputs": [{"name": "account", "type": "address"}],
    "outputs": [{"name": "", "type": "bool"}]
  },
  {
    "type": "event",
    "name": "NpoRegistered",
    "anonymous": false,
    "inputs": [
      {"name": "npo", "type": "address", "indexed": true},
      {"name": "tokenId", "type": "uint32", "indexed": true},
      {"name": "name", "type": "string", "indexed": false}
    ]
  }
]`

const (
	methodRegisterNpo        = "registerNpo"
	methodGetNpo             = "getNpo"
	methodGetTokenMetadata   = "getTokenMetadata"
	methodGetAuditorRegistry = "getAuditorRegistry"
	methodGetNpoCount        = "getNpoCount"
	methodIsRegisteredNpo    = "isRegisteredNpo"
	eventNpoRegistered       = "NpoRegistered"

	// DefaultAuditorMethod enumerates the auditor registry.
	DefaultAuditorMethod = "getAllAuditors"
)
