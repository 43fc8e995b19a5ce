package migrate

// All is the full ordered registry. Versions are append-only: new units go at
// the end with the next integer, existing units never change after release.
var All = []Migration{
	{
		Version: 1,
		Name:    "bootstrap_schema",
		Up: []string{
			`CREATE TABLE IF NOT EXISTS empresas (
				id BIGSERIAL PRIMARY KEY,
				nome VARCHAR(200) NOT NULL,
				nome_fantasia VARCHAR(200),
				cnpj VARCHAR(20) UNIQUE,
				telefone VARCHAR(20),
				email VARCHAR(200),
				endereco TEXT,
				cidade VARCHAR(100),
				estado VARCHAR(2),
				cep VARCHAR(10),
				plano VARCHAR(50) DEFAULT 'basico',
				limite_veiculos INTEGER DEFAULT 10,
				limite_usuarios INTEGER DEFAULT 3,
				limite_clientes INTEGER DEFAULT 50,
				ativo BOOLEAN DEFAULT TRUE,
				data_criacao TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS usuarios (
				id BIGSERIAL PRIMARY KEY,
				empresa_id BIGINT NOT NULL REFERENCES empresas(id) ON DELETE CASCADE,
				username VARCHAR(100) UNIQUE NOT NULL,
				password_hash VARCHAR(255) NOT NULL,
				nome VARCHAR(200),
				email VARCHAR(200),
				role VARCHAR(50) NOT NULL DEFAULT 'usuario',
				ativo BOOLEAN DEFAULT TRUE,
				ultimo_acesso TIMESTAMPTZ,
				data_criacao TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS logs_acoes (
				id BIGSERIAL PRIMARY KEY,
				empresa_id BIGINT REFERENCES empresas(id) ON DELETE CASCADE,
				usuario_id BIGINT REFERENCES usuarios(id) ON DELETE SET NULL,
				acao VARCHAR(100) NOT NULL,
				detalhes TEXT,
				ip VARCHAR(64),
				data_hora TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS veiculos (
				id BIGSERIAL PRIMARY KEY,
				empresa_id BIGINT NOT NULL REFERENCES empresas(id) ON DELETE RESTRICT,
				tipo VARCHAR(50),
				placa VARCHAR(10) NOT NULL,
				modelo VARCHAR(100),
				marca VARCHAR(100),
				ano INTEGER,
				quilometragem INTEGER DEFAULT 0,
				ultima_manutencao DATE,
				proxima_manutencao DATE,
				status VARCHAR(50) DEFAULT 'Operacional',
				observacoes TEXT,
				data_cadastro TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
				CONSTRAINT unique_placa_por_empresa UNIQUE (empresa_id, placa)
			)`,
			`CREATE TABLE IF NOT EXISTS fornecedores (
				id BIGSERIAL PRIMARY KEY,
				empresa_id BIGINT NOT NULL REFERENCES empresas(id) ON DELETE RESTRICT,
				nome VARCHAR(200) NOT NULL,
				cnpj VARCHAR(20),
				telefone VARCHAR(20),
				email VARCHAR(200),
				endereco TEXT,
				contato VARCHAR(200),
				especialidade VARCHAR(200),
				ativo BOOLEAN DEFAULT TRUE,
				data_cadastro TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS pecas (
				id BIGSERIAL PRIMARY KEY,
				empresa_id BIGINT NOT NULL REFERENCES empresas(id) ON DELETE RESTRICT,
				nome VARCHAR(200) NOT NULL,
				codigo VARCHAR(50),
				descricao TEXT,
				veiculo_compativel VARCHAR(200) DEFAULT 'Universal',
				quantidade_estoque INTEGER NOT NULL DEFAULT 0 CHECK (quantidade_estoque >= 0),
				estoque_minimo INTEGER NOT NULL DEFAULT 5 CHECK (estoque_minimo >= 0),
				preco_unitario NUMERIC(12,2) DEFAULT 0 CHECK (preco_unitario >= 0),
				fornecedor_id BIGINT REFERENCES fornecedores(id) ON DELETE SET NULL,
				localizacao VARCHAR(100),
				ativo BOOLEAN DEFAULT TRUE,
				data_cadastro TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
				CONSTRAINT unique_codigo_por_empresa UNIQUE (empresa_id, codigo)
			)`,
			`CREATE TABLE IF NOT EXISTS manutencoes (
				id BIGSERIAL PRIMARY KEY,
				empresa_id BIGINT NOT NULL REFERENCES empresas(id) ON DELETE RESTRICT,
				veiculo_id BIGINT NOT NULL REFERENCES veiculos(id) ON DELETE RESTRICT,
				tipo VARCHAR(50) NOT NULL,
				descricao TEXT,
				data_agendada DATE NOT NULL,
				data_realizada DATE,
				custo_mao_obra NUMERIC(12,2) DEFAULT 0 CHECK (custo_mao_obra >= 0),
				custo_total NUMERIC(12,2) DEFAULT 0 CHECK (custo_total >= 0),
				status VARCHAR(50) NOT NULL DEFAULT 'Agendada',
				tecnico VARCHAR(200),
				observacoes TEXT,
				km_veiculo INTEGER,
				data_criacao TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS manutencao_pecas (
				id BIGSERIAL PRIMARY KEY,
				manutencao_id BIGINT NOT NULL REFERENCES manutencoes(id) ON DELETE CASCADE,
				peca_id BIGINT NOT NULL REFERENCES pecas(id) ON DELETE RESTRICT,
				quantidade INTEGER NOT NULL DEFAULT 1 CHECK (quantidade > 0),
				preco_unitario NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (preco_unitario >= 0),
				subtotal NUMERIC(12,2) GENERATED ALWAYS AS (quantidade * preco_unitario) STORED,
				observacoes TEXT,
				data_adicao TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS historico_estoque (
				id BIGSERIAL PRIMARY KEY,
				peca_id BIGINT NOT NULL REFERENCES pecas(id) ON DELETE CASCADE,
				operacao VARCHAR(20) NOT NULL CHECK (operacao IN ('ENTRADA', 'SAIDA', 'AJUSTE')),
				quantidade_anterior INTEGER NOT NULL,
				quantidade_movimento INTEGER NOT NULL,
				quantidade_nova INTEGER NOT NULL,
				motivo TEXT,
				usuario VARCHAR(200) DEFAULT 'Sistema',
				manutencao_id BIGINT REFERENCES manutencoes(id) ON DELETE SET NULL,
				data_operacao TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS tecnicos (
				id BIGSERIAL PRIMARY KEY,
				empresa_id BIGINT NOT NULL REFERENCES empresas(id) ON DELETE RESTRICT,
				nome VARCHAR(200) NOT NULL,
				telefone VARCHAR(20),
				email VARCHAR(200),
				especialidade VARCHAR(100),
				ativo BOOLEAN DEFAULT TRUE,
				data_cadastro TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS idx_usuarios_empresa ON usuarios(empresa_id)`,
			`CREATE INDEX IF NOT EXISTS idx_veiculos_empresa ON veiculos(empresa_id)`,
			`CREATE INDEX IF NOT EXISTS idx_veiculos_status ON veiculos(empresa_id, status)`,
			`CREATE INDEX IF NOT EXISTS idx_pecas_empresa ON pecas(empresa_id)`,
			`CREATE INDEX IF NOT EXISTS idx_pecas_estoque_baixo ON pecas(empresa_id) WHERE quantidade_estoque <= estoque_minimo`,
			`CREATE INDEX IF NOT EXISTS idx_manutencoes_empresa ON manutencoes(empresa_id)`,
			`CREATE INDEX IF NOT EXISTS idx_manutencoes_veiculo ON manutencoes(veiculo_id)`,
			`CREATE INDEX IF NOT EXISTS idx_manutencoes_status ON manutencoes(empresa_id, status)`,
			`CREATE INDEX IF NOT EXISTS idx_manutencao_pecas_manutencao ON manutencao_pecas(manutencao_id)`,
			`CREATE INDEX IF NOT EXISTS idx_manutencao_pecas_peca ON manutencao_pecas(peca_id)`,
			`CREATE INDEX IF NOT EXISTS idx_historico_estoque_peca ON historico_estoque(peca_id)`,
			`CREATE INDEX IF NOT EXISTS idx_historico_estoque_data ON historico_estoque(data_operacao)`,
			`CREATE INDEX IF NOT EXISTS idx_logs_acoes_empresa ON logs_acoes(empresa_id, data_hora)`,
			`CREATE OR REPLACE FUNCTION update_updated_at_column()
			RETURNS TRIGGER AS $$
			BEGIN
				NEW.updated_at = CURRENT_TIMESTAMP;
				RETURN NEW;
			END;
			$$ LANGUAGE plpgsql`,
			`DROP TRIGGER IF EXISTS trigger_empresas_updated_at ON empresas`,
			`CREATE TRIGGER trigger_empresas_updated_at BEFORE UPDATE ON empresas
				FOR EACH ROW EXECUTE FUNCTION update_updated_at_column()`,
			`DROP TRIGGER IF EXISTS trigger_veiculos_updated_at ON veiculos`,
			`CREATE TRIGGER trigger_veiculos_updated_at BEFORE UPDATE ON veiculos
				FOR EACH ROW EXECUTE FUNCTION update_updated_at_column()`,
			`DROP TRIGGER IF EXISTS trigger_fornecedores_updated_at ON fornecedores`,
			`CREATE TRIGGER trigger_fornecedores_updated_at BEFORE UPDATE ON fornecedores
				FOR EACH ROW EXECUTE FUNCTION update_updated_at_column()`,
			`DROP TRIGGER IF EXISTS trigger_pecas_updated_at ON pecas`,
			`CREATE TRIGGER trigger_pecas_updated_at BEFORE UPDATE ON pecas
				FOR EACH ROW EXECUTE FUNCTION update_updated_at_column()`,
			`DROP TRIGGER IF EXISTS trigger_manutencoes_updated_at ON manutencoes`,
			`CREATE TRIGGER trigger_manutencoes_updated_at BEFORE UPDATE ON manutencoes
				FOR EACH ROW EXECUTE FUNCTION update_updated_at_column()`,
			`DROP TRIGGER IF EXISTS trigger_tecnicos_updated_at ON tecnicos`,
			`CREATE TRIGGER trigger_tecnicos_updated_at BEFORE UPDATE ON tecnicos
				FOR EACH ROW EXECUTE FUNCTION update_updated_at_column()`,
		},
		Down: []string{
			`DROP TABLE IF EXISTS tecnicos CASCADE`,
			`DROP TABLE IF EXISTS historico_estoque CASCADE`,
			`DROP TABLE IF EXISTS manutencao_pecas CASCADE`,
			`DROP TABLE IF EXISTS manutencoes CASCADE`,
			`DROP TABLE IF EXISTS pecas CASCADE`,
			`DROP TABLE IF EXISTS fornecedores CASCADE`,
			`DROP TABLE IF EXISTS veiculos CASCADE`,
			`DROP TABLE IF EXISTS logs_acoes CASCADE`,
			`DROP TABLE IF EXISTS usuarios CASCADE`,
			`DROP TABLE IF EXISTS empresas CASCADE`,
			`DROP FUNCTION IF EXISTS update_updated_at_column()`,
		},
	},
	{
		Version: 2,
		Name:    "add_tipo_operacao_empresas",
		Up: []string{
			`ALTER TABLE empresas ADD COLUMN IF NOT EXISTS tipo_operacao VARCHAR(10) NOT NULL DEFAULT 'FROTA'
				CHECK (tipo_operacao IN ('FROTA', 'SERVICO', 'HIBRIDO'))`,
			`CREATE INDEX IF NOT EXISTS idx_empresas_tipo_operacao ON empresas(tipo_operacao)`,
		},
		Down: []string{
			`DROP INDEX IF EXISTS idx_empresas_tipo_operacao`,
			`ALTER TABLE empresas DROP COLUMN IF EXISTS tipo_operacao`,
		},
	},
	{
		Version: 3,
		Name:    "create_clientes",
		Up: []string{
			`CREATE TABLE IF NOT EXISTS clientes (
				id BIGSERIAL PRIMARY KEY,
				empresa_id BIGINT NOT NULL REFERENCES empresas(id) ON DELETE RESTRICT,
				nome VARCHAR(200) NOT NULL,
				documento VARCHAR(20),
				tipo_documento VARCHAR(10) CHECK (tipo_documento IN ('CPF', 'CNPJ')),
				telefone VARCHAR(20),
				email VARCHAR(200),
				endereco TEXT,
				cidade VARCHAR(100),
				estado VARCHAR(2),
				cep VARCHAR(10),
				observacoes TEXT,
				status VARCHAR(20) NOT NULL DEFAULT 'ATIVO' CHECK (status IN ('ATIVO', 'INATIVO')),
				created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
				CONSTRAINT unique_documento_por_empresa UNIQUE (empresa_id, documento)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_clientes_empresa ON clientes(empresa_id)`,
			`CREATE INDEX IF NOT EXISTS idx_clientes_empresa_status ON clientes(empresa_id, status)`,
			`CREATE INDEX IF NOT EXISTS idx_clientes_nome ON clientes(empresa_id, nome)`,
			`DROP TRIGGER IF EXISTS trigger_clientes_updated_at ON clientes`,
			`CREATE TRIGGER trigger_clientes_updated_at BEFORE UPDATE ON clientes
				FOR EACH ROW EXECUTE FUNCTION update_updated_at_column()`,
		},
		Down: []string{
			`DROP TABLE IF EXISTS clientes CASCADE`,
		},
	},
	{
		Version: 4,
		Name:    "create_servicos",
		Up: []string{
			`CREATE TABLE IF NOT EXISTS servicos (
				id BIGSERIAL PRIMARY KEY,
				empresa_id BIGINT NOT NULL REFERENCES empresas(id) ON DELETE RESTRICT,
				nome VARCHAR(200) NOT NULL,
				descricao TEXT,
				preco_base NUMERIC(12,2) DEFAULT 0 CHECK (preco_base >= 0),
				tempo_estimado_minutos INTEGER,
				categoria VARCHAR(100),
				ativo BOOLEAN DEFAULT TRUE,
				created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS idx_servicos_empresa ON servicos(empresa_id)`,
			`CREATE INDEX IF NOT EXISTS idx_servicos_empresa_ativo ON servicos(empresa_id, ativo)`,
			`DROP TRIGGER IF EXISTS trigger_servicos_updated_at ON servicos`,
			`CREATE TRIGGER trigger_servicos_updated_at BEFORE UPDATE ON servicos
				FOR EACH ROW EXECUTE FUNCTION update_updated_at_column()`,
		},
		Down: []string{
			`DROP TABLE IF EXISTS servicos CASCADE`,
		},
	},
	{
		Version: 5,
		Name:    "add_cliente_id_veiculos",
		Up: []string{
			`ALTER TABLE veiculos ADD COLUMN IF NOT EXISTS cliente_id BIGINT REFERENCES clientes(id) ON DELETE SET NULL`,
			`CREATE INDEX IF NOT EXISTS idx_veiculos_cliente ON veiculos(cliente_id)`,
		},
		Down: []string{
			`DROP INDEX IF EXISTS idx_veiculos_cliente`,
			`ALTER TABLE veiculos DROP COLUMN IF EXISTS cliente_id`,
		},
	},
	{
		Version: 6,
		Name:    "create_manutencao_servicos",
		Up: []string{
			`CREATE TABLE IF NOT EXISTS manutencao_servicos (
				id BIGSERIAL PRIMARY KEY,
				manutencao_id BIGINT NOT NULL REFERENCES manutencoes(id) ON DELETE CASCADE,
				servico_id BIGINT REFERENCES servicos(id) ON DELETE SET NULL,
				nome_servico VARCHAR(200) NOT NULL,
				descricao TEXT,
				quantidade NUMERIC(10,2) NOT NULL DEFAULT 1 CHECK (quantidade > 0),
				valor_unitario NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (valor_unitario >= 0),
				subtotal NUMERIC(12,2) GENERATED ALWAYS AS (quantidade * valor_unitario) STORED,
				observacoes TEXT,
				created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS idx_manutencao_servicos_manutencao ON manutencao_servicos(manutencao_id)`,
			`CREATE INDEX IF NOT EXISTS idx_manutencao_servicos_servico ON manutencao_servicos(servico_id)`,
		},
		Down: []string{
			`DROP TABLE IF EXISTS manutencao_servicos CASCADE`,
		},
	},
	{
		Version: 7,
		Name:    "create_ordens_servico",
		Up: []string{
			`CREATE TABLE IF NOT EXISTS ordens_servico (
				id BIGSERIAL PRIMARY KEY,
				empresa_id BIGINT NOT NULL REFERENCES empresas(id) ON DELETE RESTRICT,
				cliente_id BIGINT NOT NULL REFERENCES clientes(id) ON DELETE RESTRICT,
				numero_os VARCHAR(50) UNIQUE NOT NULL,
				status VARCHAR(20) NOT NULL DEFAULT 'ABERTA'
					CHECK (status IN ('ABERTA', 'EM_EXECUCAO', 'CONCLUIDA', 'CANCELADA')),
				valor_mao_obra NUMERIC(12,2) DEFAULT 0 CHECK (valor_mao_obra >= 0),
				valor_pecas NUMERIC(12,2) DEFAULT 0 CHECK (valor_pecas >= 0),
				valor_servicos NUMERIC(12,2) DEFAULT 0 CHECK (valor_servicos >= 0),
				valor_total NUMERIC(12,2) GENERATED ALWAYS AS (valor_mao_obra + valor_pecas + valor_servicos) STORED,
				data_abertura TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
				data_conclusao TIMESTAMPTZ,
				observacoes TEXT,
				observacoes_internas TEXT,
				created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS idx_ordens_servico_empresa ON ordens_servico(empresa_id)`,
			`CREATE INDEX IF NOT EXISTS idx_ordens_servico_cliente ON ordens_servico(cliente_id)`,
			`CREATE INDEX IF NOT EXISTS idx_ordens_servico_status ON ordens_servico(empresa_id, status)`,
			`DROP TRIGGER IF EXISTS trigger_ordens_servico_updated_at ON ordens_servico`,
			`CREATE TRIGGER trigger_ordens_servico_updated_at BEFORE UPDATE ON ordens_servico
				FOR EACH ROW EXECUTE FUNCTION update_updated_at_column()`,
		},
		Down: []string{
			`DROP TABLE IF EXISTS ordens_servico CASCADE`,
		},
	},
	{
		Version: 8,
		Name:    "add_ordem_servico_id_manutencoes",
		Up: []string{
			`ALTER TABLE manutencoes ADD COLUMN IF NOT EXISTS ordem_servico_id BIGINT REFERENCES ordens_servico(id) ON DELETE SET NULL`,
			`CREATE INDEX IF NOT EXISTS idx_manutencoes_ordem_servico ON manutencoes(ordem_servico_id)`,
		},
		Down: []string{
			`DROP INDEX IF EXISTS idx_manutencoes_ordem_servico`,
			`ALTER TABLE manutencoes DROP COLUMN IF EXISTS ordem_servico_id`,
		},
	},
	{
		Version: 9,
		Name:    "add_composite_indexes",
		Up: []string{
			`CREATE INDEX IF NOT EXISTS idx_manutencoes_empresa_data ON manutencoes(empresa_id, data_agendada)`,
			`CREATE INDEX IF NOT EXISTS idx_manutencoes_empresa_veiculo ON manutencoes(empresa_id, veiculo_id)`,
			`CREATE INDEX IF NOT EXISTS idx_pecas_empresa_ativo ON pecas(empresa_id, ativo)`,
			`CREATE INDEX IF NOT EXISTS idx_fornecedores_empresa_ativo ON fornecedores(empresa_id, ativo)`,
			`CREATE INDEX IF NOT EXISTS idx_usuarios_empresa_role ON usuarios(empresa_id, role)`,
			`CREATE INDEX IF NOT EXISTS idx_empresas_ativo_tipo ON empresas(ativo, tipo_operacao)`,
			`CREATE INDEX IF NOT EXISTS idx_ordens_servico_abertura ON ordens_servico(empresa_id, data_abertura)`,
		},
		Down: []string{
			`DROP INDEX IF EXISTS idx_manutencoes_empresa_data`,
			`DROP INDEX IF EXISTS idx_manutencoes_empresa_veiculo`,
			`DROP INDEX IF EXISTS idx_pecas_empresa_ativo`,
			`DROP INDEX IF EXISTS idx_fornecedores_empresa_ativo`,
			`DROP INDEX IF EXISTS idx_usuarios_empresa_role`,
			`DROP INDEX IF EXISTS idx_empresas_ativo_tipo`,
			`DROP INDEX IF EXISTS idx_ordens_servico_abertura`,
		},
	},
	{
		Version: 10,
		Name:    "add_financeiro_manutencoes",
		Up: []string{
			`ALTER TABLE manutencoes ADD COLUMN IF NOT EXISTS financeiro_lancado_em TIMESTAMPTZ`,
			`ALTER TABLE manutencoes ADD COLUMN IF NOT EXISTS financeiro_tipo VARCHAR(20)`,
			`ALTER TABLE manutencoes ADD COLUMN IF NOT EXISTS valor_total_servicos NUMERIC(12,2) DEFAULT 0`,
		},
		Down: []string{
			`ALTER TABLE manutencoes DROP COLUMN IF EXISTS valor_total_servicos`,
			`ALTER TABLE manutencoes DROP COLUMN IF EXISTS financeiro_tipo`,
			`ALTER TABLE manutencoes DROP COLUMN IF EXISTS financeiro_lancado_em`,
		},
	},
	{
		Version: 11,
		Name:    "create_categorias_pecas",
		Up: []string{
			`CREATE TABLE IF NOT EXISTS categorias_pecas (
				id BIGSERIAL PRIMARY KEY,
				empresa_id BIGINT NOT NULL REFERENCES empresas(id) ON DELETE CASCADE,
				nome VARCHAR(100) NOT NULL,
				descricao TEXT,
				cor VARCHAR(20) DEFAULT '#6c757d',
				icone VARCHAR(50) DEFAULT 'fas fa-tag',
				ativo BOOLEAN DEFAULT TRUE,
				created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
				CONSTRAINT unique_categoria_por_empresa UNIQUE (empresa_id, nome)
			)`,
			`ALTER TABLE pecas ADD COLUMN IF NOT EXISTS categoria_id BIGINT REFERENCES categorias_pecas(id) ON DELETE SET NULL`,
			`CREATE INDEX IF NOT EXISTS idx_pecas_categoria ON pecas(categoria_id)`,
			`DROP TRIGGER IF EXISTS trigger_categorias_pecas_updated_at ON categorias_pecas`,
			`CREATE TRIGGER trigger_categorias_pecas_updated_at BEFORE UPDATE ON categorias_pecas
				FOR EACH ROW EXECUTE FUNCTION update_updated_at_column()`,
		},
		Down: []string{
			`DROP INDEX IF EXISTS idx_pecas_categoria`,
			`ALTER TABLE pecas DROP COLUMN IF EXISTS categoria_id`,
			`DROP TABLE IF EXISTS categorias_pecas CASCADE`,
		},
	},
	{
		Version: 12,
		Name:    "add_cliente_id_manutencoes",
		Up: []string{
			`ALTER TABLE manutencoes ADD COLUMN IF NOT EXISTS cliente_id BIGINT REFERENCES clientes(id) ON DELETE SET NULL`,
			`CREATE INDEX IF NOT EXISTS idx_manutencoes_cliente ON manutencoes(cliente_id)`,
		},
		Down: []string{
			`DROP INDEX IF EXISTS idx_manutencoes_cliente`,
			`ALTER TABLE manutencoes DROP COLUMN IF EXISTS cliente_id`,
		},
	},
	{
		Version: 13,
		Name:    "create_notificacoes",
		Up: []string{
			`CREATE TABLE IF NOT EXISTS notificacoes (
				id BIGSERIAL PRIMARY KEY,
				empresa_id BIGINT NOT NULL REFERENCES empresas(id) ON DELETE CASCADE,
				usuario_id BIGINT REFERENCES usuarios(id) ON DELETE CASCADE,
				tipo VARCHAR(50) NOT NULL DEFAULT 'SISTEMA',
				titulo VARCHAR(200) NOT NULL,
				mensagem TEXT,
				lida BOOLEAN NOT NULL DEFAULT FALSE,
				link VARCHAR(500),
				created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS idx_notificacoes_empresa ON notificacoes(empresa_id)`,
			`CREATE INDEX IF NOT EXISTS idx_notificacoes_usuario ON notificacoes(usuario_id)`,
			`CREATE INDEX IF NOT EXISTS idx_notificacoes_nao_lidas ON notificacoes(empresa_id, lida) WHERE lida = FALSE`,
		},
		Down: []string{
			`DROP TABLE IF EXISTS notificacoes CASCADE`,
		},
	},
	{
		Version: 14,
		Name:    "veiculo_opcional_manutencoes",
		Up: []string{
			`ALTER TABLE manutencoes ALTER COLUMN veiculo_id DROP NOT NULL`,
		},
		Down: []string{
			`DELETE FROM manutencoes WHERE veiculo_id IS NULL`,
			`ALTER TABLE manutencoes ALTER COLUMN veiculo_id SET NOT NULL`,
		},
	},
	{
		Version: 15,
		Name:    "add_unidade_medida_veiculos",
		Up: []string{
			`ALTER TABLE veiculos ADD COLUMN IF NOT EXISTS unidade_medida VARCHAR(10) NOT NULL DEFAULT 'km'
				CHECK (unidade_medida IN ('km', 'horas'))`,
		},
		Down: []string{
			`ALTER TABLE veiculos DROP COLUMN IF EXISTS unidade_medida`,
		},
	},
}
