package utilityapi

// Client bundles the endpoints sharing one Connection.
type Client struct {
	Connection *Connection
	Accounts   *Accounts
	Services   *Services
}

func NewClient(cfg Config) (*Client, error) {
	conn, err := NewConnection(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{
		Connection: conn,
		Accounts:   NewAccounts(conn),
		Services:   NewServices(conn),
	}, nil
}
